package systems

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Attractor is a point mass taking part in gravity.
type Attractor struct {
	Position cp.Vector
	Mass     float64
}

// Gravity aggregates pairwise Newtonian attraction.
type Gravity struct {
	G      float64
	Cutoff float64 // Pairs further apart are skipped (0 = no cutoff)
}

// PairForce returns the force on a caused by b.
func (g Gravity) PairForce(a, b Attractor) cp.Vector {
	delta := b.Position.Sub(a.Position)
	distSq := delta.LengthSq()
	if distSq == 0 {
		return cp.Vector{}
	}
	if g.Cutoff > 0 && distSq > g.Cutoff*g.Cutoff {
		return cp.Vector{}
	}
	magnitude := g.G * a.Mass * b.Mass / distSq
	return delta.Mult(magnitude / math.Sqrt(distSq))
}

// Forces returns the summed gravity force on each attractor, in order.
// Each unordered pair is evaluated once and applied to both sides.
func (g Gravity) Forces(attractors []Attractor) []cp.Vector {
	forces := make([]cp.Vector, len(attractors))
	for i := 0; i < len(attractors); i++ {
		for j := i + 1; j < len(attractors); j++ {
			f := g.PairForce(attractors[i], attractors[j])
			forces[i] = forces[i].Add(f)
			forces[j] = forces[j].Sub(f)
		}
	}
	return forces
}

// Apply accumulates gravity forces onto the bodies. The forces act on the
// next space step.
func (g Gravity) Apply(bodies []*cp.Body) {
	attractors := make([]Attractor, len(bodies))
	for i, b := range bodies {
		attractors[i] = Attractor{Position: b.Position(), Mass: b.Mass()}
	}
	for i, f := range g.Forces(attractors) {
		if f.X == 0 && f.Y == 0 {
			continue
		}
		bodies[i].ApplyForceAtWorldPoint(f, bodies[i].Position())
	}
}

// Knock applies an impulse of the given momentum along angle at the
// body's center.
func Knock(body *cp.Body, momentum, angle float64) {
	body.ApplyImpulseAtWorldPoint(FromAngle(angle, momentum), body.Position())
}

// Twist changes a body's spin by an angular impulse.
func Twist(body *cp.Body, impulse float64) {
	body.SetAngularVelocity(body.AngularVelocity() + impulse/body.Moment())
}

// SetIterations maps separate velocity and position pass counts onto the
// space's single solver iteration count.
func SetIterations(space *cp.Space, velocityIterations, positionIterations int) {
	n := velocityIterations + positionIterations
	if n < 1 {
		n = 1
	}
	space.Iterations = uint(n)
}
