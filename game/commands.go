package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/systems"
)

// Firing constants.
const (
	firePowerScale = .15
	launchDistance = 1.5 // In vehicle radii
	spinDamping    = .8  // Share of spin removed by a deflection
	escapeStrength = .36
	escapeJitter   = .05
)

// flushCommands drains the queue and runs each command in order. A
// failing command is logged and skipped.
func (s *State) flushCommands() {
	for _, cmd := range s.queue.Drain() {
		s.run(cmd)
	}
}

func (s *State) run(cmd components.Command) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("command failed",
				"command", cmd.String(),
				"tick_time", s.tickTime,
				"error", r,
			)
		}
	}()
	s.execute(cmd)
}

func (s *State) execute(cmd components.Command) {
	switch cmd.Kind {
	case components.CmdFire:
		s.fire(s.mustVehicle(cmd.Subject))

	case components.CmdDetonate:
		if w := s.Warhead(cmd.Subject); w != nil {
			s.detonate(w, cmd.Other)
		}

	case components.CmdDisintegrate:
		if w := s.Warhead(cmd.Subject); w != nil {
			s.disintegrate(w)
		}

	case components.CmdSpawnParticle:
		s.particles.Spawn(cmd.Particle, s.tickTime)

	case components.CmdKnock:
		// The target may be gone by the time the knock runs
		if b := s.body(cmd.Subject); b != nil {
			b.Body.ApplyImpulseAtWorldPoint(cmd.Vector, b.Position())
		}

	case components.CmdDampSpin:
		if w := s.Warhead(cmd.Subject); w != nil {
			w.Body.SetAngularVelocity(w.Body.AngularVelocity() * (1 - spinDamping))
		}

	case components.CmdLaser:
		s.laser(s.Vehicle(cmd.Subject), s.Warhead(cmd.Other), cmd.Amount)

	case components.CmdEscape:
		if v := s.Vehicle(cmd.Subject); v != nil {
			s.escape(v)
		}

	default:
		panic(fmt.Sprintf("game: unknown command kind %d", cmd.Kind))
	}
}

// fire launches a warhead from v along its player's aim. The shooter's
// shield lets this turn's warheads through and the vehicle recoils.
func (s *State) fire(v *Vehicle) {
	p := v.Player
	direction := systems.FromAngle(p.Aim.Angle, 1)
	position := v.Position().Add(direction.Mult(launchDistance * v.Radius))
	velocity := direction.Mult(p.Aim.Power * firePowerScale).Add(v.Velocity())

	if v.Shield != nil {
		v.Shield.SetOnTurn()
	}
	systems.Knock(v.Body, WarheadMass*velocity.Length(), p.Aim.Angle+math.Pi)

	s.particles.Spawn(components.ParticleSpec{
		Name:     "muzzle",
		Position: position,
		Velocity: v.Velocity(),
		Radius:   .3,
		Duration: 250,
	}, s.tickTime)

	w := s.addWarhead(s.newID(), p, components.BodySpec{
		Position:   position,
		Velocity:   velocity,
		Angle:      p.Aim.Angle + 1.5*math.Pi,
		Mass:       WarheadMass,
		Radius:     WarheadRadius,
		Elasticity: warheadElasticity,
		Friction:   warheadFriction,
	}, s.tickTime, true)
	p.LastWarhead = w.ID
}

// laser burns w if nothing solid stands between v and w.
func (s *State) laser(v *Vehicle, w *Warhead, damage float64) {
	if v == nil || w == nil {
		return
	}
	hit := s.space.SegmentQueryFirst(v.Position(), w.Position(), 0, systems.RaycastFilter(v.group))
	f := fixtureOf(hit.Shape)
	if f == nil || f.id != w.ID {
		return
	}
	s.SustainDamage(w, damage)
	s.particles.Spawn(components.ParticleSpec{
		Name:     "laser",
		Position: hit.Point,
		Velocity: w.Velocity(),
		Radius:   .15,
		Duration: 100,
	}, s.tickTime)
}

// escape knocks v away from the body pulling it hardest, with some
// jitter in strength and direction.
func (s *State) escape(v *Vehicle) {
	var strongest cp.Vector
	for _, b := range s.GravityBodies() {
		if b.ID == v.ID {
			continue
		}
		delta := b.Position().Sub(v.Position())
		distSq := delta.LengthSq()
		if distSq == 0 {
			continue
		}
		influence := delta.Mult(b.Mass() / distSq)
		if influence.LengthSq() > strongest.LengthSq() {
			strongest = influence
		}
	}
	if strongest.LengthSq() == 0 {
		strongest = systems.FromAngle(s.rng.Float64()*2*math.Pi, 1)
	}

	strength := v.Mass() * strongest.Length() * escapeStrength * (1 + (s.rng.Float64()*2-1)*escapeJitter)
	sign := 1.0
	if s.rng.IntN(2) == 0 {
		sign = -1
	}
	x := s.rng.Float64()
	spread := (1 - (x-1)*(x-1)) * sign * math.Pi / 4
	angle := math.Atan2(strongest.Y, strongest.X) + math.Pi + spread

	systems.Knock(v.Body, strength, angle)
}
