package shield

import (
	"fmt"
	"math"
	"sort"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/systems"
)

// Kind selects a shield variant.
type Kind uint8

const (
	ForceField Kind = iota
	Deflector
	Diamagnetor
	Disintegrator
	ActiveDefender
	Refractor
)

// HitFunc decides what happens when a warhead touches the shield.
type HitFunc func(s *Shield, c Contact) Outcome

// BlockFunc returns the damage that passes through the shield.
type BlockFunc func(s *Shield, amount float64, selfFired bool) float64

// UpdateFunc runs once per tick while the shield has energy.
type UpdateFunc func(s *Shield, now float64) []components.Command

// Spec holds the tunables and behavior of one shield variant. A nil
// behavior falls back to the plain default: keep the contact, block
// nothing, do nothing per tick.
type Spec struct {
	Name        string
	Description string
	Price       int
	Size        float64 // Shape radius; zero means no shape

	Hit         HitFunc
	BlockDamage BlockFunc
	Update      UpdateFunc
}

var registry = map[Kind]Spec{
	ForceField: {
		Name:        "Force Field",
		Description: "Blocks a larger ratio of damage, the more damage is inflicted",
		Price:       400,
		Size:        DefaultSize,
		Hit:         forceFieldHit,
		BlockDamage: forceFieldBlock,
	},
	Deflector: {
		Name:        "Deflector",
		Description: "Bounces direct hits away without detonating the warhead. Does not block any damage",
		Price:       600,
		Size:        DefaultSize,
		Hit:         deflectorHit,
	},
	Diamagnetor: {
		Name:        "Diamagnetor",
		Description: "Pushes warheads away without detonating them. Does not block any damage",
		Price:       900,
		Size:        MagnetSize,
		Hit:         diamagnetorHit,
	},
	Disintegrator: {
		Name:        "Disintegrator",
		Description: "Shatters nearby warheads without detonating them. Does not block any damage",
		Price:       1200,
		Size:        DefaultSize,
		Hit:         disintegratorHit,
	},
	ActiveDefender: {
		Name:        "Active Defender",
		Description: "Burns warheads at a distance with a laser until they detonate. Does not block any damage",
		Price:       1500,
		Size:        LaserSize,
		Hit:         activeDefenderHit,
	},
	Refractor: {
		Name:        "Refractor",
		Description: "Throws the vehicle clear of the strongest gravity well, then falls apart on the first hit",
		Price:       300,
		BlockDamage: refractorBlock,
		Update:      refractorUpdate,
	},
}

// Register adds or replaces a variant.
func Register(kind Kind, spec Spec) {
	registry[kind] = spec
}

// Lookup returns the spec for kind. Panics on an unregistered kind.
func Lookup(kind Kind) Spec {
	spec, ok := registry[kind]
	if !ok {
		panic(fmt.Sprintf("shield: no variant registered for kind %d", kind))
	}
	return spec
}

// Kinds returns all registered kinds in ascending order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// String returns the variant's display name.
func (k Kind) String() string {
	if spec, ok := registry[k]; ok {
		return spec.Name
	}
	return fmt.Sprintf("Shield(%d)", k)
}

func forceFieldHit(s *Shield, c Contact) Outcome {
	return Outcome{
		Handled:  true,
		Commands: []components.Command{components.Detonate(c.Warhead, s.Vehicle)},
	}
}

// forceFieldBlock absorbs a growing share of larger hits: 20 damage gets
// through as ~15, 100 as 50.
func forceFieldBlock(s *Shield, amount float64, selfFired bool) float64 {
	if s.Energy <= 0 || selfFired || amount <= 0 {
		return amount
	}
	final := math.Sqrt(2*amount+25)*5 - 25
	s.Energy -= .4*(1-final/amount)*100 + UsageCost
	return final
}

func deflectorHit(s *Shield, c Contact) Outcome {
	s.Energy -= DeflectCost
	return Outcome{
		Keep:     true,
		Commands: []components.Command{components.DampSpin(c.Warhead)},
	}
}

func diamagnetorHit(s *Shield, c Contact) Outcome {
	dt, ok := s.pulse(c.Now, MagnetInterval)
	if !ok {
		return Outcome{}
	}

	away := c.WarheadBody.Position().Sub(c.VehicleBody.Position())
	adjusted := away.Length() - DefaultSize
	force := systems.EaseOut(math.Max(0, (MagnetSize-adjusted)/MagnetSize))
	impulse := force * c.WarheadBody.Mass() * MagnetPower * dt / MagnetInterval
	s.Energy -= impulse * MagnetEnergyFactor

	return Outcome{
		Commands: []components.Command{
			components.Knock(c.Warhead, away.Normalize().Mult(impulse)),
		},
	}
}

func disintegratorHit(s *Shield, c Contact) Outcome {
	s.Energy -= DisintegrateCost
	return Outcome{
		Handled:  true,
		Commands: []components.Command{components.Disintegrate(c.Warhead)},
	}
}

func activeDefenderHit(s *Shield, c Contact) Outcome {
	dt, ok := s.pulse(c.Now, LaserInterval)
	if !ok {
		return Outcome{}
	}
	damage := LaserPower * dt * .001
	s.Energy -= damage * LaserEnergyRatio
	return Outcome{
		Commands: []components.Command{components.Laser(s.Vehicle, c.Warhead, damage)},
	}
}

// refractorBlock gives up the shield on the first hit.
func refractorBlock(s *Shield, amount float64, _ bool) float64 {
	s.Energy = 0
	s.Hits = nil
	return amount
}

func refractorUpdate(s *Shield, now float64) []components.Command {
	if s.escaped || now-s.AttachedAt < RefractDelay {
		return nil
	}
	s.escaped = true
	return []components.Command{components.Escape(s.Vehicle)}
}
