package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/systems"
)

// Clone rebuilds the state in a fresh space. Every body is recreated from
// its readable fields, so the clone shares nothing with the original
// engine. IDs, players, shields, fuel, the RNG stream, the tick clock and
// pending commands carry over; particles and perf timing do not.
func (s *State) Clone() *State {
	c := &State{
		opts:     s.opts,
		space:    newSpace(),
		tickTime: s.tickTime,
		ticks:    s.ticks,
		lastDT:   s.lastDT,
		nextID:   s.nextID,
		gravity:  s.gravity,
	}
	c.opts.Perf = nil
	c.particles = systems.NewParticleStore(c.space)
	c.installContactHandler()

	pcg := *s.pcg
	c.pcg = &pcg
	c.rng = rand.New(c.pcg)

	for _, p := range s.players {
		c.players = append(c.players, p.clone())
	}
	if s.onTurn != nil {
		c.onTurn = c.mustPlayer(s.onTurn.ID)
	}

	for _, v := range s.vehicles {
		nv := c.addVehicle(v.ID, c.mustPlayer(v.Player.ID), v.Spec())
		nv.Trail = v.Trail.Clone()
		nv.HitPoints = v.HitPoints
		nv.HasCollided = v.HasCollided
		if v.Fuel != nil {
			nv.Fuel = v.Fuel.Clone()
		}
		if v.Shield != nil {
			nv.Shield = v.Shield.Clone()
			nv.Shield.Attach(c.space, nv.Body, nv.group, &fixture{kind: components.KindShield, id: nv.ID})
		}
	}

	for _, p := range s.planets {
		np := c.addPlanet(p.ID, p.Name, p.Spec())
		np.Trail = p.Trail.Clone()
	}

	for _, w := range s.warheads {
		nw := c.addWarhead(w.ID, c.mustPlayer(w.FiredBy.ID), w.Spec(), w.CreatedAt, w.onTurn)
		nw.Trail = w.Trail.Clone()
		nw.Handled = w.Handled
		nw.HitPoints = w.HitPoints
		nw.stabilizer = w.stabilizer
		nw.pid = w.pid
		nw.lastUpdatedAt = w.lastUpdatedAt
		nw.lastPosition = w.lastPosition
	}

	if b := s.border; b != nil {
		center := c.Planet(b.Center.ID)
		if center == nil {
			panic(fmt.Sprintf("game: clone lost border center planet %d", b.Center.ID))
		}
		c.border = c.newBorder(b.ID, center, b.Radius, b.Position(), b.Velocity())
		c.border.pid = b.pid
	}

	c.queue.Push(s.queue.Pending()...)
	return c
}

func (s *State) mustPlayer(id components.ID) *Player {
	p := s.Player(id)
	if p == nil {
		panic(fmt.Sprintf("game: no player with id %d", id))
	}
	return p
}
