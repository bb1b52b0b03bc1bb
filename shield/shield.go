// Package shield implements the defensive policies a vehicle can carry.
// Each variant intercepts warhead contacts and decides whether to absorb,
// deflect, repel, disintegrate or burn the warhead, spending energy.
//
// Hits run inside the physics step, so a shield never mutates the space
// directly: it returns commands for the game state to execute afterwards.
package shield

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/systems"
)

// Shared tunables.
const (
	DefaultEnergy = 100.0
	DefaultSize   = 1.2
	UsageCost     = 10.0 // Base energy cost of any block
	HitFadeTime   = 1000.0

	MagnetSize         = DefaultSize + 1.5
	MagnetPower        = 12.0
	MagnetInterval     = 50.0
	MagnetEnergyFactor = .2

	LaserSize        = 15.0
	LaserInterval    = 16.0
	LaserPower       = 200.0 // Damage per second
	LaserEnergyRatio = .1    // Energy per point of laser damage

	DeflectCost      = 20.0
	DisintegrateCost = 20.0
	RefractDelay     = 1000.0
)

// Hit records a warhead strike for effects.
type Hit struct {
	At     float64   // tickTime in ms
	Offset cp.Vector // Warhead position relative to the vehicle
}

// Shield is a vehicle's active defense.
type Shield struct {
	Kind       Kind
	Energy     float64
	Vehicle    components.ID // Vehicle the shield is attached to
	Owner      components.ID // Player owning the vehicle
	AttachedAt float64
	OnTurn     bool
	Hits       []Hit

	shape     *cp.Shape
	lastPulse float64
	escaped   bool
}

// New creates a full shield of the given kind at tickTime now.
func New(kind Kind, vehicle, owner components.ID, now float64) *Shield {
	Lookup(kind)
	return &Shield{
		Kind:       kind,
		Energy:     DefaultEnergy,
		Vehicle:    vehicle,
		Owner:      owner,
		AttachedAt: now,
		lastPulse:  math.Inf(-1),
	}
}

// Spec returns the variant tunables.
func (s *Shield) Spec() Spec {
	return Lookup(s.Kind)
}

// Attach adds the shield's shape to body. group must match the vehicle
// hull so raycasts from the vehicle skip both. tag becomes the shape's
// user data.
func (s *Shield) Attach(space *cp.Space, body *cp.Body, group uint, tag interface{}) {
	size := s.Spec().Size
	if size <= 0 {
		return
	}
	shape := cp.NewCircle(body, size, cp.Vector{})
	shape.SetElasticity(1)
	shape.SetFriction(0)
	shape.SetCollisionType(systems.CollisionTypeBody)
	shape.SetFilter(systems.ShieldFilter(group, s.OnTurn))
	shape.UserData = tag
	space.AddShape(shape)
	s.shape = shape
}

// Detach removes the shield's shape from the space.
func (s *Shield) Detach(space *cp.Space) {
	if s.shape == nil {
		return
	}
	space.RemoveShape(s.shape)
	s.shape = nil
}

// Attached reports whether the shield currently has a shape in a space.
func (s *Shield) Attached() bool {
	return s.shape != nil
}

// Shape returns the shield's engine shape, or nil when detached.
func (s *Shield) Shape() *cp.Shape {
	return s.shape
}

// SetOnTurn lets warheads fired this turn pass through.
func (s *Shield) SetOnTurn() {
	s.setTurn(true)
}

// SetEndTurn makes the shield block every warhead again.
func (s *Shield) SetEndTurn() {
	s.setTurn(false)
}

func (s *Shield) setTurn(onTurn bool) {
	s.OnTurn = onTurn
	if s.shape != nil {
		s.shape.SetFilter(systems.ShieldFilter(s.shape.Filter.Group, onTurn))
	}
}

// Contact describes a warhead touching the shield during a physics step.
type Contact struct {
	Now         float64 // tickTime in ms
	DT          float64 // Current tick length in ms
	Warhead     components.ID
	WarheadBody *cp.Body
	VehicleBody *cp.Body
	FiredBy     components.ID // Player who fired the warhead
}

// Outcome is a shield's decision about one contact.
type Outcome struct {
	Keep     bool // Let the engine resolve the contact
	Handled  bool // The warhead's fate is decided; ignore further contacts
	Commands []components.Command
}

// Spent reports whether the shield has run out of energy. A spent shield
// no longer intercepts warheads.
func (s *Shield) Spent() bool {
	return s.Energy <= 0
}

// Hit lets the shield react to a warhead contact. A spent shield lets the
// contact through untouched.
func (s *Shield) Hit(c Contact) Outcome {
	if s.Spent() {
		return Outcome{Keep: true}
	}
	s.Hits = append(s.Hits, Hit{
		At:     c.Now,
		Offset: c.WarheadBody.Position().Sub(c.VehicleBody.Position()),
	})
	hit := s.Spec().Hit
	if hit == nil {
		return Outcome{Keep: true}
	}
	return hit(s, c)
}

// BlockDamage returns the part of amount that gets through the shield.
// Self-inflicted damage is never blocked by energy-based shields.
func (s *Shield) BlockDamage(amount float64, firedBy components.ID) float64 {
	spec := s.Spec()
	if spec.BlockDamage == nil {
		return amount
	}
	return spec.BlockDamage(s, amount, firedBy == s.Owner)
}

// Update fades old hits and runs timed variant behavior. detach is true
// as soon as the shield is spent.
func (s *Shield) Update(now float64) (cmds []components.Command, detach bool) {
	alive := s.Hits[:0]
	for _, h := range s.Hits {
		if now-h.At < HitFadeTime {
			alive = append(alive, h)
		}
	}
	s.Hits = alive

	if s.Spent() {
		return nil, true
	}
	if update := s.Spec().Update; update != nil {
		cmds = update(s, now)
	}
	return cmds, false
}

// HitAlpha returns the visibility of the newest hit flash in [0, 1].
func (s *Shield) HitAlpha(now float64) float64 {
	if len(s.Hits) == 0 {
		return 0
	}
	last := s.Hits[len(s.Hits)-1]
	return 1 - systems.Clamp01((now-last.At)/HitFadeTime)
}

// pulse rate-limits periodic effects. When a new pulse is due it returns the
// time since the previous one, capped at 1.5 intervals.
func (s *Shield) pulse(now, interval float64) (float64, bool) {
	elapsed := now - s.lastPulse
	if elapsed < interval {
		return 0, false
	}
	s.lastPulse = now
	return math.Min(elapsed, interval*1.5), true
}

// Clone returns a detached copy. The caller attaches it to the cloned body.
func (s *Shield) Clone() *Shield {
	c := *s
	c.shape = nil
	c.Hits = append([]Hit(nil), s.Hits...)
	return &c
}
