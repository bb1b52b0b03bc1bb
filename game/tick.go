package game

import (
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/systems"
)

// TickClock advances the simulation by dt seconds.
//
// Order per tick: physics step, tickTime, queued commands, gravity for the
// next step, trails, vehicles, warheads, particles, border. The very first
// tick of a state applies gravity before stepping so a fresh world feels it
// right away.
func (s *State) TickClock(dt float64, velocityIterations, positionIterations int) {
	if s.perf != nil {
		s.perf.StartTick()
		defer s.perf.EndTick()
	}

	if s.ticks == 0 {
		s.startPhase(systems.SysGravity)
		s.applyGravity()
	}

	s.startPhase(systems.SysPhysics)
	for _, v := range s.vehicles {
		v.HasCollided = false
	}
	s.lastDT = dt * 1000
	systems.SetIterations(s.space, velocityIterations, positionIterations)
	s.space.Step(dt)
	s.tickTime += dt * 1000
	s.ticks++

	s.startPhase(systems.SysCommands)
	s.flushCommands()

	s.startPhase(systems.SysGravity)
	s.applyGravity()

	s.startPhase(systems.SysTrails)
	for _, v := range s.vehicles {
		v.Trail.Add(v.Position())
	}
	for _, w := range s.warheads {
		w.Trail.Add(w.Position())
	}

	s.startPhase(systems.SysVehicles)
	for _, v := range slices.Clone(s.vehicles) {
		s.updateVehicle(v)
	}

	s.startPhase(systems.SysWarheads)
	for _, w := range slices.Clone(s.warheads) {
		s.updateWarhead(w)
	}

	s.startPhase(systems.SysParticles)
	s.particles.Update(s.tickTime)

	s.startPhase(systems.SysBorder)
	if s.border != nil {
		s.border.update()
	}
}

func (s *State) startPhase(id string) {
	if s.perf != nil {
		s.perf.StartPhase(id)
	}
}

// applyGravity accumulates attraction between all gravity bodies.
func (s *State) applyGravity() {
	bodies := s.GravityBodies()
	handles := make([]*cp.Body, len(bodies))
	for i, b := range bodies {
		handles[i] = b.Body
	}
	s.gravity.Apply(handles)
}
