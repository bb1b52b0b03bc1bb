package game

import (
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/shield"
	"github.com/pthm-cable/orbital/systems"
)

// installContactHandler routes every contact in the space through preSolve.
func (s *State) installContactHandler() {
	handler := s.space.NewCollisionHandler(systems.CollisionTypeBody, systems.CollisionTypeBody)
	handler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		return s.preSolve(arb)
	}
}

// preSolve runs inside the physics step. It may only record flags and
// queue commands. Returning false skips the contact for this step.
func (s *State) preSolve(arb *cp.Arbiter) bool {
	a, b := arb.Shapes()
	fa, fb := fixtureOf(a), fixtureOf(b)
	if fa == nil || fb == nil {
		return true
	}

	keep := true
	if fa.kind == components.KindWarhead {
		keep = s.warheadContact(fa, fb) && keep
	}
	if fb.kind == components.KindWarhead {
		keep = s.warheadContact(fb, fa) && keep
	}
	if fa.kind != components.KindWarhead && fb.kind != components.KindWarhead {
		s.markCollided(fa)
		s.markCollided(fb)
	}

	if fa.kind == components.KindPlanet && fb.kind == components.KindPlanet {
		slog.Debug("planets collided", "a", fa.id, "b", fb.id, "tick_time", s.tickTime)
	}
	return keep
}

func (s *State) markCollided(f *fixture) {
	if f.kind != components.KindVehicle {
		return
	}
	if v := s.Vehicle(f.id); v != nil {
		v.HasCollided = true
	}
}

// warheadContact handles a warhead touching other. Shields decide for
// themselves; anything else detonates the warhead once.
func (s *State) warheadContact(fw, other *fixture) bool {
	w := s.Warhead(fw.id)
	if w == nil || w.Handled {
		return true
	}

	if other.kind == components.KindShield {
		v := s.Vehicle(other.id)
		if v == nil || v.Shield == nil {
			return true
		}
		if v.Shield.Spent() {
			s.queue.Push(components.Detonate(w.ID, v.ID))
			w.Handled = true
			return true
		}
		out := v.Shield.Hit(shield.Contact{
			Now:         s.tickTime,
			DT:          s.lastDT,
			Warhead:     w.ID,
			WarheadBody: w.Body,
			VehicleBody: v.Body,
			FiredBy:     w.FiredBy.ID,
		})
		s.queue.Push(out.Commands...)
		if out.Handled {
			w.Handled = true
		}
		return out.Keep
	}

	s.queue.Push(components.Detonate(w.ID, other.id))
	w.Handled = true
	return true
}
