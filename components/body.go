package components

import "github.com/jakecoffman/cp"

// BodySpec holds everything needed to rebuild a physics body from scratch.
// Game states are cloned by reading a BodySpec off every live body and
// recreating it in a fresh space.
type BodySpec struct {
	Position        cp.Vector
	Velocity        cp.Vector
	Angle           float64
	AngularVelocity float64
	Force           cp.Vector // Accumulated force not yet integrated
	Mass            float64
	Radius          float64
	Elasticity      float64
	Friction        float64
}

// Momentum returns mass times velocity.
func (s BodySpec) Momentum() cp.Vector {
	return s.Velocity.Mult(s.Mass)
}

// SpecOf reads the rebuildable state of a live body.
func SpecOf(body *cp.Body, radius, elasticity, friction float64) BodySpec {
	return BodySpec{
		Position:        body.Position(),
		Velocity:        body.Velocity(),
		Angle:           body.Angle(),
		AngularVelocity: body.AngularVelocity(),
		Force:           body.Force(),
		Mass:            body.Mass(),
		Radius:          radius,
		Elasticity:      elasticity,
		Friction:        friction,
	}
}
