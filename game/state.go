package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/fuel"
	"github.com/pthm-cable/orbital/shield"
	"github.com/pthm-cable/orbital/systems"
	"github.com/pthm-cable/orbital/telemetry"
)

// StateOptions configures a new State.
type StateOptions struct {
	Seed    uint64
	Gravity systems.Gravity
	Perf    *telemetry.PerfCollector // Optional per-step timing
}

// DamageEvent records damage taken by a vehicle from a blast.
type DamageEvent struct {
	TickTime float64
	From     components.ID // Player who fired
	To       components.ID // Player owning the damaged vehicle
	Amount   float64
	Kill     bool // The hit destroyed the vehicle
}

// State owns the physics space and every simulated body, and advances
// them one tick at a time.
type State struct {
	space     *cp.Space
	planets   []*Planet
	vehicles  []*Vehicle
	warheads  []*Warhead
	particles *systems.ParticleStore
	border    *Border

	players []*Player
	onTurn  *Player

	tickTime float64 // ms, advanced only by TickClock
	ticks    int
	lastDT   float64 // ms length of the latest tick

	queue   CommandQueue
	nextID  components.ID
	pcg     *rand.PCG
	rng     *rand.Rand
	gravity systems.Gravity
	perf    *telemetry.PerfCollector
	damage  []DamageEvent
	opts    StateOptions
}

// NewState creates an empty state.
func NewState(opts StateOptions) *State {
	s := &State{opts: opts}
	s.Reset()
	return s
}

// Reset drops every body and player and starts a fresh space. The RNG is
// reseeded so a reset state replays identically.
func (s *State) Reset() {
	s.space = newSpace()
	s.particles = systems.NewParticleStore(s.space)
	s.installContactHandler()

	s.planets = nil
	s.vehicles = nil
	s.warheads = nil
	s.border = nil
	s.players = nil
	s.onTurn = nil
	s.tickTime = 0
	s.ticks = 0
	s.lastDT = 0
	s.queue = CommandQueue{}
	s.nextID = components.NoID
	s.pcg = rand.NewPCG(s.opts.Seed, s.opts.Seed^0x9e3779b97f4a7c15)
	s.rng = rand.New(s.pcg)
	s.gravity = s.opts.Gravity
	s.perf = s.opts.Perf
	s.damage = nil
}

// SetSeed changes the seed the next Reset starts from.
func (s *State) SetSeed(seed uint64) {
	s.opts.Seed = seed
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return space
}

func (s *State) newID() components.ID {
	s.nextID++
	return s.nextID
}

// Space exposes the physics space for read-only queries.
func (s *State) Space() *cp.Space { return s.space }

// TickTime returns the simulated time in milliseconds.
func (s *State) TickTime() float64 { return s.tickTime }

// Ticks returns the number of ticks run.
func (s *State) Ticks() int { return s.ticks }

// Planets returns the live planets.
func (s *State) Planets() []*Planet { return s.planets }

// Vehicles returns the live vehicles.
func (s *State) Vehicles() []*Vehicle { return s.vehicles }

// Warheads returns the warheads in flight, oldest first.
func (s *State) Warheads() []*Warhead { return s.warheads }

// Particles returns the effect particle store.
func (s *State) Particles() *systems.ParticleStore { return s.particles }

// Border returns the map border, or nil.
func (s *State) Border() *Border { return s.border }

// Players returns all players in turn order.
func (s *State) Players() []*Player { return s.players }

// Pending returns the number of queued commands.
func (s *State) Pending() int { return s.queue.Len() }

// Rand returns the state's seeded random source.
func (s *State) Rand() *rand.Rand { return s.rng }

// GravityBodies returns vehicles, planets and warheads in that order.
func (s *State) GravityBodies() []*FreeBody {
	bodies := make([]*FreeBody, 0, len(s.vehicles)+len(s.planets)+len(s.warheads))
	for _, v := range s.vehicles {
		bodies = append(bodies, &v.FreeBody)
	}
	for _, p := range s.planets {
		bodies = append(bodies, &p.FreeBody)
	}
	for _, w := range s.warheads {
		bodies = append(bodies, &w.FreeBody)
	}
	return bodies
}

// Vehicle returns the vehicle with id, or nil.
func (s *State) Vehicle(id components.ID) *Vehicle {
	for _, v := range s.vehicles {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// Warhead returns the warhead with id, or nil.
func (s *State) Warhead(id components.ID) *Warhead {
	for _, w := range s.warheads {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// Planet returns the planet with id, or nil.
func (s *State) Planet(id components.ID) *Planet {
	for _, p := range s.planets {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Player returns the player with id, or nil.
func (s *State) Player(id components.ID) *Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// body finds any body by id, or nil.
func (s *State) body(id components.ID) *FreeBody {
	if id == components.NoID {
		return nil
	}
	if v := s.Vehicle(id); v != nil {
		return &v.FreeBody
	}
	if p := s.Planet(id); p != nil {
		return &p.FreeBody
	}
	if w := s.Warhead(id); w != nil {
		return &w.FreeBody
	}
	if s.border != nil && s.border.ID == id {
		return &s.border.FreeBody
	}
	return nil
}

func (s *State) mustVehicle(id components.ID) *Vehicle {
	v := s.Vehicle(id)
	if v == nil {
		panic(fmt.Sprintf("game: no vehicle with id %d", id))
	}
	return v
}

// AddPlayer registers a player. Players take turns in the order added.
func (s *State) AddPlayer(name string, kind PlayerType, cash float64) *Player {
	p := NewPlayer(s.newID(), name, kind, cash)
	s.players = append(s.players, p)
	return p
}

// OnTurn returns the player on turn, or nil before the game starts.
func (s *State) OnTurn() *Player { return s.onTurn }

// SetOnTurn makes p the player on turn.
func (s *State) SetOnTurn(p *Player) { s.onTurn = p }

// NextPlayerOnTurn passes the turn to the next player with a living
// vehicle. Panics when no player is on turn.
func (s *State) NextPlayerOnTurn() *Player {
	if s.onTurn == nil {
		panic("game: no player is on turn")
	}
	var alive []*Player
	for _, p := range s.players {
		if p.Alive() || p == s.onTurn {
			alive = append(alive, p)
		}
	}
	for i, p := range alive {
		if p == s.onTurn {
			s.onTurn = alive[(i+1)%len(alive)]
			break
		}
	}
	return s.onTurn
}

// FireWarhead queues a shot from p's vehicle with p's current aim.
func (s *State) FireWarhead(p *Player) {
	if p.Vehicle == nil {
		panic(fmt.Sprintf("game: player %q has no vehicle", p.Name))
	}
	s.queue.Push(components.Fire(p.Vehicle.ID))
}

// SelectShield sets the shield p will buy next.
func (s *State) SelectShield(p *Player, kind shield.Kind) {
	shield.Lookup(kind)
	p.SelectedShield = kind
}

// SelectFuel sets the fuel p will buy with the next jump.
func (s *State) SelectFuel(p *Player, kind fuel.Kind) {
	fuel.Lookup(kind)
	p.SelectedFuel = kind
}

// EquipShield buys p's selected shield and attaches it, replacing any
// current one.
func (s *State) EquipShield(p *Player) {
	spec := shield.Lookup(p.SelectedShield)
	p.Buy(spec.Name, spec.Price, s.tickTime)
	s.attachShield(p.Vehicle, p.SelectedShield)
	p.ShieldPicked = true
}

// StartJump buys p's selected fuel, fills the tank with it and launches
// the vehicle along the aim.
func (s *State) StartJump(p *Player) {
	v := p.Vehicle
	if v == nil {
		panic(fmt.Sprintf("game: player %q has no vehicle", p.Name))
	}
	spec := fuel.Lookup(p.SelectedFuel)
	p.Buy(spec.Name, spec.Price, s.tickTime)

	v.Fuel = fuel.New(p.SelectedFuel, s.tickTime)
	ex := v.Fuel.Jump(v.Body, v.Radius, p.Aim.Angle, p.Aim.Power)
	s.particles.Spawn(ex.Particle("jump"), s.tickTime)
	p.SelectedFuel = fuel.Hydrazine
}

// StartThrust begins burning p's fuel toward target.
func (s *State) StartThrust(p *Player, target cp.Vector) {
	if p.Vehicle == nil || p.Vehicle.Fuel == nil {
		return
	}
	p.Vehicle.Fuel.StartThrust(s.tickTime, target)
}

// EndThrust stops p's burn.
func (s *State) EndThrust(p *Player) {
	if p.Vehicle == nil || p.Vehicle.Fuel == nil {
		return
	}
	p.Vehicle.Fuel.EndThrust()
}

// EndTurn re-arms every shield against every warhead.
func (s *State) EndTurn() {
	for _, v := range s.vehicles {
		if v.Shield != nil {
			v.Shield.SetEndTurn()
		}
	}
	for _, w := range s.warheads {
		w.setOnTurn(false)
	}
}

func (s *State) recordDamage(from *Player, v *Vehicle, amount float64, kill bool) {
	s.damage = append(s.damage, DamageEvent{
		TickTime: s.tickTime,
		From:     from.ID,
		To:       v.Player.ID,
		Amount:   amount,
		Kill:     kill,
	})
}

// TakeDamage returns and clears the damage recorded since the last call.
func (s *State) TakeDamage() []DamageEvent {
	events := s.damage
	s.damage = nil
	return events
}
