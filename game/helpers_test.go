package game

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/systems"
)

const testDT = 1.0 / 60

func newTestState(t *testing.T) *State {
	t.Helper()
	return NewState(StateOptions{Seed: 1, Gravity: systems.Gravity{G: .4}})
}

func tickN(s *State, n int) {
	for i := 0; i < n; i++ {
		s.TickClock(testDT, 8, 3)
	}
}

func addTestVehicle(s *State, name string, pos cp.Vector) (*Player, *Vehicle) {
	p := s.AddPlayer(name, PlayerHuman, 1000)
	v := s.AddVehicle(p, components.BodySpec{Position: pos})
	return p, v
}

func addTestWarhead(s *State, firedBy *Player, pos, vel cp.Vector) *Warhead {
	return s.addWarhead(s.newID(), firedBy, components.BodySpec{
		Position:   pos,
		Velocity:   vel,
		Mass:       WarheadMass,
		Radius:     WarheadRadius,
		Elasticity: warheadElasticity,
		Friction:   warheadFriction,
	}, s.TickTime(), false)
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}
