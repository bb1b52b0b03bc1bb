package game

import (
	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/systems"
)

// Planet is a passive gravity body.
type Planet struct {
	FreeBody
}

// AddPlanet creates a planet from spec. The default restitution and
// friction apply when spec leaves them zero.
func (s *State) AddPlanet(name string, spec components.BodySpec) *Planet {
	return s.addPlanet(s.newID(), name, spec)
}

func (s *State) addPlanet(id components.ID, name string, spec components.BodySpec) *Planet {
	if spec.Elasticity == 0 {
		spec.Elasticity = .3
	}
	if spec.Friction == 0 {
		spec.Friction = .6
	}

	body := newDynamicBody(s.space, spec, cp.MomentForCircle(spec.Mass, 0, spec.Radius, cp.Vector{}))
	body.UserData = id
	shape := attachShape(s.space, cp.NewCircle(body, spec.Radius, cp.Vector{}), spec,
		systems.PlanetFilter(), &fixture{kind: components.KindPlanet, id: id})

	p := &Planet{FreeBody{
		ID:         id,
		Name:       name,
		Kind:       components.KindPlanet,
		Body:       body,
		Shape:      shape,
		Radius:     spec.Radius,
		Trail:      components.NewTrail(),
		elasticity: spec.Elasticity,
		friction:   spec.Friction,
	}}
	s.planets = append(s.planets, p)
	return p
}
