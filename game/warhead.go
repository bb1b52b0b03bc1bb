package game

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/systems"
)

// Warhead defaults.
const (
	WarheadRadius    = .2
	WarheadMass      = 1.0
	WarheadHitPoints = 100.0
	WarheadDamage    = 50.0
	WarheadEnergy    = 50.0 // Blast momentum at the center

	SelfDestructTime = 45000.0 // ms

	warheadElasticity     = .1
	warheadFriction       = .1
	warheadStabilizerFuel = 5.0
	warheadUpdateInterval = 333.0

	BlastRadius   = 2.0
	BlastDuration = 1000.0

	puffThreshold = .03
)

// Warhead is a fired projectile.
type Warhead struct {
	FreeBody
	FiredBy   *Player
	Handled   bool // Detonation or removal already queued
	CreatedAt float64
	HitPoints float64

	onTurn        bool
	stabilizer    float64
	pid           systems.PID
	lastUpdatedAt float64
	lastPosition  cp.Vector
}

func (s *State) addWarhead(id components.ID, firedBy *Player, spec components.BodySpec, createdAt float64, onTurn bool) *Warhead {
	w, h := 2*spec.Radius, 3*spec.Radius
	body := newDynamicBody(s.space, spec, cp.MomentForBox(spec.Mass, w, h))
	body.UserData = id
	shape := attachShape(s.space, cp.NewBox(body, w, h, 0), spec,
		systems.WarheadFilter(onTurn), &fixture{kind: components.KindWarhead, id: id})

	wh := &Warhead{
		FreeBody: FreeBody{
			ID:         id,
			Name:       firedBy.Name,
			Kind:       components.KindWarhead,
			Body:       body,
			Shape:      shape,
			Radius:     spec.Radius,
			Trail:      components.NewTrail(),
			elasticity: spec.Elasticity,
			friction:   spec.Friction,
		},
		FiredBy:       firedBy,
		CreatedAt:     createdAt,
		HitPoints:     WarheadHitPoints,
		onTurn:        onTurn,
		stabilizer:    warheadStabilizerFuel,
		pid:           systems.NewPID(-.3, .01, -.2),
		lastUpdatedAt: createdAt,
		lastPosition:  spec.Position,
	}
	s.warheads = append(s.warheads, wh)
	return wh
}

// Age returns the time since launch at tickTime now.
func (w *Warhead) Age(now float64) float64 {
	return now - w.CreatedAt
}

// setOnTurn switches the warhead between this turn's and older shots.
func (w *Warhead) setOnTurn(onTurn bool) {
	w.onTurn = onTurn
	w.Shape.SetFilter(systems.WarheadFilter(onTurn))
}

// SustainDamage lowers hit points; a destroyed warhead detonates on the
// next command flush.
func (s *State) SustainDamage(w *Warhead, damage float64) {
	w.HitPoints -= damage
	if w.HitPoints <= 0 && !w.Handled {
		w.Handled = true
		s.queue.Push(components.Detonate(w.ID, components.NoID))
	}
}

// updateWarhead stabilizes the heading, ages the warhead and checks for
// contacts skipped between steps.
func (s *State) updateWarhead(w *Warhead) {
	if s.sweep(w) {
		return
	}

	if s.tickTime-w.lastUpdatedAt <= warheadUpdateInterval {
		return
	}
	w.lastUpdatedAt = s.tickTime

	if w.stabilizer > 0 {
		s.stabilize(w)
	}

	if w.Age(s.tickTime) > SelfDestructTime && !w.Handled {
		w.Handled = true
		s.detonate(w, components.NoID)
	}
}

// sweep looks for a solid body between the previous and current position.
// Fast warheads can pass through small planets in a single step.
func (s *State) sweep(w *Warhead) bool {
	from, to := w.lastPosition, w.Position()
	w.lastPosition = to
	if w.Handled || from == to {
		return false
	}

	filter := cp.NewShapeFilter(systems.NoGroup, systems.CatWarhead, systems.CatPlanet|systems.CatVehicle)
	hit := s.space.SegmentQueryFirst(from, to, w.Radius, filter)
	f := fixtureOf(hit.Shape)
	if f == nil || f.id == w.ID {
		return false
	}
	if v := s.Vehicle(f.id); v != nil && v.Player == w.FiredBy && w.Age(s.tickTime) < warheadUpdateInterval {
		return false
	}

	w.Handled = true
	s.detonate(w, f.id)
	return true
}

// stabilize turns the warhead's nose toward its velocity.
func (s *State) stabilize(w *Warhead) {
	heading := w.Velocity().Normalize()
	nose := systems.FromAngle(w.Body.Angle(), 1)
	reaction := w.pid.Reaction(heading.Dot(nose), 0)

	systems.Twist(w.Body, reaction)
	size := math.Abs(reaction)
	w.stabilizer = math.Max(0, w.stabilizer-size)

	if size <= puffThreshold {
		return
	}
	scaled := size * 3
	side := 0.0
	if reaction >= 0 {
		side = math.Pi
	}
	tail := systems.FromAngle(w.Body.Angle()-math.Pi*.5, w.Radius)
	s.particles.Spawn(components.ParticleSpec{
		Name:     "puff",
		Position: w.Position().Add(tail),
		Velocity: w.Velocity().Add(systems.FromAngle(w.Body.Angle()-side, 3)),
		Radius:   math.Sqrt(scaled) * .7,
		Duration: scaled*100 + 300,
	}, s.tickTime)
}

// detonate blasts the warhead: nearby vehicles take damage, gravity bodies
// are knocked away and the warhead is removed. The blast particle follows
// on the next flush.
func (s *State) detonate(w *Warhead, impacted components.ID) {
	center := w.Position()
	velocity := w.Velocity()
	if b := s.body(impacted); b != nil {
		velocity = b.Velocity()
	}

	for _, v := range s.vehicles {
		dist := math.Max(0, center.Distance(v.Position())-v.Radius-w.Radius)
		if dist >= BlastRadius {
			continue
		}
		alive := v.Alive()
		damage := systems.EaseOut(1-dist/BlastRadius) * WarheadDamage
		taken := v.InflictDamage(damage, w.FiredBy)
		// Scoring uses the blast damage before any shield absorbs it.
		w.FiredBy.ScoreDamage(w, damage, v, s.tickTime)
		killed := alive && !v.Alive()
		s.recordDamage(w.FiredBy, v, taken, killed)
		if killed {
			w.FiredBy.ScoreKill(v)
		}
	}

	for _, b := range s.GravityBodies() {
		if b.ID == w.ID {
			continue
		}
		dist := math.Max(0, center.Distance(b.Position())-b.Radius-w.Radius)
		if dist >= BlastRadius {
			continue
		}
		momentum := math.Max(0, 1-dist/BlastRadius) * .5 * WarheadEnergy
		systems.Knock(b.Body, momentum, systems.Direction(center, b.Position()))
	}

	s.removeWarhead(w)
	s.queue.Push(components.SpawnParticle(components.ParticleSpec{
		Name:     "blast",
		Position: center,
		Velocity: velocity,
		Radius:   BlastRadius,
		Duration: BlastDuration,
	}))
}

// disintegrate removes the warhead without a blast.
func (s *State) disintegrate(w *Warhead) {
	center, velocity := w.Position(), w.Velocity()
	s.removeWarhead(w)
	s.queue.Push(components.SpawnParticle(components.ParticleSpec{
		Name:     "warhead_dust",
		Position: center,
		Velocity: velocity,
		Radius:   1,
		Duration: 1000,
	}))
}

func (s *State) removeWarhead(w *Warhead) {
	w.dispose(s.space)
	for i, other := range s.warheads {
		if other == w {
			s.warheads = append(s.warheads[:i], s.warheads[i+1:]...)
			break
		}
	}
}
