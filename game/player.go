package game

import (
	"fmt"
	"math"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/fuel"
	"github.com/pthm-cable/orbital/shield"
	"github.com/pthm-cable/orbital/systems"
)

// PlayerType tells who controls a player.
type PlayerType uint8

const (
	PlayerHuman PlayerType = iota
	PlayerAI
	PlayerClone // Stand-in inside a prediction fork
)

func (t PlayerType) String() string {
	switch t {
	case PlayerHuman:
		return "human"
	case PlayerAI:
		return "ai"
	case PlayerClone:
		return "clone"
	default:
		return "unknown"
	}
}

// Scoring constants.
const (
	scorePerPoint   = 10.0
	cashPerPoint    = 40.0
	maxStyleBonus   = 7.5
	selfHarmFactor  = -.5
	killPoints      = 2.0
	noAgeBonusUntil = 2000.0 // ms of flight before the style bonus starts
)

// Player takes turns firing from a vehicle.
type Player struct {
	ID   components.ID
	Name string
	Type PlayerType
	Aim  components.Aim

	SelectedFuel   fuel.Kind
	SelectedShield shield.Kind
	ShieldPicked   bool

	Vehicle     *Vehicle
	LastWarhead components.ID // Newest warhead fired by this player

	Score     float64
	Cash      float64
	Purchases []string
}

// NewPlayer creates a player with full aim power and the default fuel.
func NewPlayer(id components.ID, name string, kind PlayerType, cash float64) *Player {
	return &Player{
		ID:           id,
		Name:         name,
		Type:         kind,
		Aim:          components.NewAim(0),
		SelectedFuel: fuel.Hydrazine,
		Cash:         cash,
	}
}

// Alive reports whether the player's vehicle still has hit points.
func (p *Player) Alive() bool {
	return p.Vehicle != nil && p.Vehicle.Alive()
}

// ScoreDamage credits damage dealt by warhead to v. Hurting your own
// vehicle costs points; long flights earn a style bonus.
func (p *Player) ScoreDamage(w *Warhead, damage float64, v *Vehicle, now float64) {
	multiplier := 1.0
	if v == p.Vehicle {
		multiplier = selfHarmFactor
	}
	age := math.Max(0, w.Age(now)-noAgeBonusUntil) / (SelfDestructTime - noAgeBonusUntil)
	style := systems.EaseIn(age)*maxStyleBonus + 1

	p.addScore(multiplier * damage * style)
}

// ScoreKill credits destroying v.
func (p *Player) ScoreKill(v *Vehicle) {
	multiplier := 1.0
	if v == p.Vehicle {
		multiplier = selfHarmFactor
	}
	p.addScore(multiplier * killPoints)
}

func (p *Player) addScore(points float64) {
	p.Score += points * scorePerPoint
	p.Cash += math.Max(0, points*cashPerPoint)
}

// Buy records a purchase at tickTime now and charges the price.
func (p *Player) Buy(item string, price int, now float64) {
	minutes := now / (1000 * 60)
	seconds := math.Mod(minutes, 1) * 60
	stamp := fmt.Sprintf("%02d:%02d", int(math.Floor(minutes)), int(seconds))

	p.Purchases = append(p.Purchases,
		fmt.Sprintf("[%s] item[%s] price[%d] balance[%v]", stamp, item, price, p.Cash))
	p.Cash -= float64(price)
}

// clone copies the player for a prediction fork. Vehicle links are
// restored by the state clone.
func (p *Player) clone() *Player {
	return &Player{
		ID:             p.ID,
		Name:           p.Name,
		Type:           PlayerClone,
		Aim:            p.Aim,
		SelectedFuel:   p.SelectedFuel,
		SelectedShield: p.SelectedShield,
		ShieldPicked:   p.ShieldPicked,
		LastWarhead:    p.LastWarhead,
	}
}
