package game

import (
	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/fuel"
	"github.com/pthm-cable/orbital/shield"
	"github.com/pthm-cable/orbital/systems"
)

// Vehicle defaults.
const (
	VehicleMass      = 3.0
	VehicleRadius    = .75
	VehicleHitPoints = 100.0

	vehicleElasticity = .3
	vehicleFriction   = .6

	// A vehicle resting on a body heavier than this counts as stable.
	stableMass = 10.0
)

// Vehicle is a player's ship.
type Vehicle struct {
	FreeBody
	Player      *Player
	HitPoints   float64
	Shield      *shield.Shield
	Fuel        *fuel.Fuel
	HasCollided bool

	group uint // Collision group shared by the hull and its shield
}

// AddVehicle creates a vehicle for player from spec. Mass and radius
// default to the vehicle constants when zero. The vehicle starts with a
// full tank of the player's selected fuel.
func (s *State) AddVehicle(player *Player, spec components.BodySpec) *Vehicle {
	if spec.Mass == 0 {
		spec.Mass = VehicleMass
	}
	if spec.Radius == 0 {
		spec.Radius = VehicleRadius
	}
	if spec.Elasticity == 0 {
		spec.Elasticity = vehicleElasticity
	}
	if spec.Friction == 0 {
		spec.Friction = vehicleFriction
	}
	v := s.addVehicle(s.newID(), player, spec)
	v.Fuel = fuel.New(player.SelectedFuel, s.tickTime)
	return v
}

func (s *State) addVehicle(id components.ID, player *Player, spec components.BodySpec) *Vehicle {
	body := newDynamicBody(s.space, spec, cp.MomentForCircle(spec.Mass, 0, spec.Radius, cp.Vector{}))
	body.UserData = id
	group := uint(id)
	shape := attachShape(s.space, cp.NewCircle(body, spec.Radius, cp.Vector{}), spec,
		systems.VehicleFilter(group), &fixture{kind: components.KindVehicle, id: id})

	v := &Vehicle{
		FreeBody: FreeBody{
			ID:         id,
			Name:       player.Name,
			Kind:       components.KindVehicle,
			Body:       body,
			Shape:      shape,
			Radius:     spec.Radius,
			Trail:      components.NewTrail(),
			elasticity: spec.Elasticity,
			friction:   spec.Friction,
		},
		Player:    player,
		HitPoints: VehicleHitPoints,
		group:     group,
	}
	player.Vehicle = v
	s.vehicles = append(s.vehicles, v)
	return v
}

// Alive reports whether the vehicle still has hit points.
func (v *Vehicle) Alive() bool {
	return v.HitPoints > 0
}

// IsStable reports whether the vehicle rests against a heavy body.
func (v *Vehicle) IsStable() bool {
	stable := false
	v.Body.EachArbiter(func(arb *cp.Arbiter) {
		a, b := arb.Shapes()
		other := b
		if fixtureOf(a) == nil || fixtureOf(a).id != v.ID {
			other = a
		}
		f := fixtureOf(other)
		if f == nil || f.kind == components.KindBorder || f.kind == components.KindShield {
			return
		}
		if other.Body().Mass() > stableMass {
			stable = true
		}
	})
	return stable
}

// InflictDamage lowers hit points by amount after the shield had its say.
// Returns the damage actually taken.
func (v *Vehicle) InflictDamage(amount float64, firedBy *Player) float64 {
	taken := amount
	if v.Shield != nil {
		taken = v.Shield.BlockDamage(amount, firedBy.ID)
	}
	v.HitPoints -= taken
	return taken
}

// attachShield replaces the current shield with a new one of kind.
func (s *State) attachShield(v *Vehicle, kind shield.Kind) {
	s.detachShield(v)
	sh := shield.New(kind, v.ID, v.Player.ID, s.tickTime)
	sh.Attach(s.space, v.Body, v.group, &fixture{kind: components.KindShield, id: v.ID})
	v.Shield = sh
}

func (s *State) detachShield(v *Vehicle) {
	if v.Shield == nil {
		return
	}
	v.Shield.Detach(s.space)
	v.Shield = nil
}

// update burns fuel and ticks the shield.
func (s *State) updateVehicle(v *Vehicle) {
	if v.Fuel != nil {
		if ex, ok := v.Fuel.Burn(s.tickTime, v.Body); ok {
			s.particles.Spawn(ex.Particle("exhaust"), s.tickTime)
		}
	}

	if v.Shield != nil {
		cmds, detach := v.Shield.Update(s.tickTime)
		s.queue.Push(cmds...)
		if detach {
			s.detachShield(v)
		}
	}
}
