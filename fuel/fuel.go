// Package fuel models vehicle propellant: sampled thrust burns and jumps
// that turn player input into impulses while consuming a finite amount.
package fuel

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/systems"
)

// DefaultAmount is the fuel a new tank holds.
const DefaultAmount = 100.0

const momentumDivisor = 50.0

// Fuel is a vehicle's propellant tank.
type Fuel struct {
	Kind            Kind
	Amount          float64
	LastUpdatedAt   float64
	Thrusting       bool
	ThrustStartedAt float64
	Target          cp.Vector
}

// New creates a full tank of the given kind at tickTime now.
func New(kind Kind, now float64) *Fuel {
	Lookup(kind)
	return &Fuel{
		Kind:            kind,
		Amount:          DefaultAmount,
		LastUpdatedAt:   now,
		ThrustStartedAt: now,
	}
}

// Spec returns the variant tunables.
func (f *Fuel) Spec() Spec {
	return Lookup(f.Kind)
}

// StartThrust begins a burn toward target.
func (f *Fuel) StartThrust(now float64, target cp.Vector) {
	f.Thrusting = true
	f.ThrustStartedAt = now
	f.Target = target
}

// EndThrust stops burning.
func (f *Fuel) EndThrust() {
	f.Thrusting = false
}

// Exhaust describes one burn or jump for effects and telemetry.
type Exhaust struct {
	Position cp.Vector
	Velocity cp.Vector
	Throttle float64
	Momentum float64
	FuelUsed float64
	Size     float64
	Duration float64
}

// Particle returns the cosmetic particle for this exhaust.
func (e Exhaust) Particle(name string) components.ParticleSpec {
	return components.ParticleSpec{
		Name:     name,
		Position: e.Position,
		Velocity: e.Velocity,
		Radius:   e.Size,
		Duration: e.Duration,
	}
}

// Burn takes one thrust sample at tickTime now. Samples are rate limited to
// the variant's update interval. Returns false when nothing was burned.
func (f *Fuel) Burn(now float64, body *cp.Body) (Exhaust, bool) {
	spec := f.Spec()
	if !f.Thrusting || f.Amount <= 0 || now-f.LastUpdatedAt <= spec.UpdateInterval {
		return Exhaust{}, false
	}
	f.LastUpdatedAt = now

	position := body.Position()
	direction := systems.Direction(position, f.Target)
	throttle := spec.Timing(systems.Clamp01((now - f.ThrustStartedAt) / spec.RampUpTime))

	momentum := throttle * spec.ThrustMax * spec.UpdateInterval / momentumDivisor
	systems.Knock(body, body.Mass()*momentum, direction)

	used := momentum / spec.Efficiency
	before := f.Amount
	f.Amount = math.Max(0, f.Amount-used)

	exhaustDir := direction + math.Pi
	return Exhaust{
		Position: position,
		Velocity: body.Velocity().Add(systems.FromAngle(exhaustDir, throttle*spec.Efficiency*5)),
		Throttle: throttle,
		Momentum: momentum,
		FuelUsed: before - f.Amount,
		Size:     throttle * spec.ExhaustSize,
		Duration: spec.ExhaustDuration,
	}, true
}

// Jump applies a single impulse of power*jumpStrength*mass along angle.
// radius places the launch footprint behind the body.
func (f *Fuel) Jump(body *cp.Body, radius, angle, power float64) Exhaust {
	strength := power * f.Spec().JumpStrength
	systems.Knock(body, strength*body.Mass(), angle)

	footprint := body.Position().Add(systems.FromAngle(angle+math.Pi, radius))
	return Exhaust{
		Position: footprint,
		Velocity: body.Velocity(),
		Throttle: 1,
		Momentum: strength,
		Size:     strength * .01,
		Duration: 150,
	}
}

// Clone returns an independent copy.
func (f *Fuel) Clone() *Fuel {
	c := *f
	return &c
}
