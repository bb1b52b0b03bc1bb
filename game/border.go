package game

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/systems"
)

const (
	borderSides     = 6
	borderThickness = 1.0
)

// Border is the hexagonal wall around the map. It is a kinematic body that
// follows the center planet.
type Border struct {
	FreeBody
	Center *Planet

	pid systems.PIDVec
}

// SetBorder surrounds center with a hexagonal wall of the given radius,
// replacing any previous border.
func (s *State) SetBorder(center *Planet, radius float64) *Border {
	if s.border != nil {
		s.border.dispose(s.space)
	}
	s.border = s.newBorder(s.newID(), center, radius, center.Position(), center.Velocity())
	return s.border
}

func (s *State) newBorder(id components.ID, center *Planet, radius float64, position, velocity cp.Vector) *Border {
	body := s.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(position)
	body.SetVelocityVector(velocity)
	body.UserData = id

	spec := components.BodySpec{Radius: radius, Elasticity: .5, Friction: .1}
	tag := &fixture{kind: components.KindBorder, id: id}
	var first *cp.Shape
	for i := 0; i < borderSides; i++ {
		a := systems.FromAngle(float64(i)*2*math.Pi/borderSides, radius)
		b := systems.FromAngle(float64(i+1)*2*math.Pi/borderSides, radius)
		shape := attachShape(s.space, cp.NewSegment(body, a, b, borderThickness), spec, systems.BorderFilter(), tag)
		if first == nil {
			first = shape
		}
	}

	return &Border{
		FreeBody: FreeBody{
			ID:         id,
			Name:       "border",
			Kind:       components.KindBorder,
			Body:       body,
			Shape:      first,
			Radius:     radius,
			elasticity: spec.Elasticity,
			friction:   spec.Friction,
		},
		Center: center,
		pid:    systems.NewPIDVec(.3, .001, 2),
	}
}

// update steers the border toward the center planet.
func (b *Border) update() {
	reaction := b.pid.Reaction(b.Center.Position(), b.Position())
	b.Body.SetVelocityVector(b.Velocity().Add(reaction))
}
