package game

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/systems"
)

// FreeBody is the common part of every simulated actor backed by an
// engine body.
type FreeBody struct {
	ID     components.ID
	Name   string
	Kind   components.Kind
	Body   *cp.Body
	Shape  *cp.Shape
	Radius float64
	Trail  components.Trail

	elasticity float64
	friction   float64
}

// fixture tags every shape so the contact listener can tell roles apart.
type fixture struct {
	kind components.Kind
	id   components.ID // Owning body; for shields, the vehicle
}

func fixtureOf(shape *cp.Shape) *fixture {
	if shape == nil {
		return nil
	}
	f, _ := shape.UserData.(*fixture)
	return f
}

// Position returns the body's center.
func (b *FreeBody) Position() cp.Vector {
	return b.Body.Position()
}

// Velocity returns the body's linear velocity.
func (b *FreeBody) Velocity() cp.Vector {
	return b.Body.Velocity()
}

// Mass returns the body's mass.
func (b *FreeBody) Mass() float64 {
	return b.Body.Mass()
}

// Spec reads everything needed to rebuild the body in another space.
func (b *FreeBody) Spec() components.BodySpec {
	return components.SpecOf(b.Body, b.Radius, b.elasticity, b.friction)
}

func (b *FreeBody) String() string {
	return fmt.Sprintf("%s[%d %s]", b.Kind, b.ID, b.Name)
}

// newDynamicBody creates a body from spec and adds it to space.
func newDynamicBody(space *cp.Space, spec components.BodySpec, moment float64) *cp.Body {
	body := space.AddBody(cp.NewBody(spec.Mass, moment))
	body.SetPosition(spec.Position)
	body.SetVelocityVector(spec.Velocity)
	body.SetAngle(spec.Angle)
	body.SetAngularVelocity(spec.AngularVelocity)
	if spec.Force.X != 0 || spec.Force.Y != 0 {
		body.SetForce(spec.Force)
	}
	return body
}

// attachShape configures shape and adds it to space.
func attachShape(space *cp.Space, shape *cp.Shape, spec components.BodySpec, filter cp.ShapeFilter, tag *fixture) *cp.Shape {
	shape.SetElasticity(spec.Elasticity)
	shape.SetFriction(spec.Friction)
	shape.SetCollisionType(systems.CollisionTypeBody)
	shape.SetFilter(filter)
	shape.UserData = tag
	return space.AddShape(shape)
}

// dispose removes the body and its shapes from space.
func (b *FreeBody) dispose(space *cp.Space) {
	var shapes []*cp.Shape
	b.Body.EachShape(func(shape *cp.Shape) {
		shapes = append(shapes, shape)
	})
	for _, shape := range shapes {
		space.RemoveShape(shape)
	}
	space.RemoveBody(b.Body)
}
