package systems

import (
	"github.com/jakecoffman/cp"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orbital/components"
)

// ParticleStore manages cosmetic particles as ECS entities. Each particle
// owns a shapeless kinematic body so it drifts with the space step.
type ParticleStore struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Particle, components.ParticleBody]
	filter *ecs.Filter2[components.Particle, components.ParticleBody]
	space  *cp.Space
	count  int
}

// NewParticleStore creates an empty store whose bodies live in space.
func NewParticleStore(space *cp.Space) *ParticleStore {
	world := ecs.NewWorld()
	return &ParticleStore{
		world:  world,
		mapper: ecs.NewMap2[components.Particle, components.ParticleBody](world),
		filter: ecs.NewFilter2[components.Particle, components.ParticleBody](world),
		space:  space,
	}
}

// Spawn adds a particle created at tickTime now.
func (s *ParticleStore) Spawn(spec components.ParticleSpec, now float64) ecs.Entity {
	body := cp.NewKinematicBody()
	body.SetPosition(spec.Position)
	body.SetVelocityVector(spec.Velocity)
	s.space.AddBody(body)

	p := components.Particle{
		Name:       spec.Name,
		CreatedAt:  now,
		Duration:   spec.Duration,
		FullRadius: spec.Radius,
	}
	pb := components.ParticleBody{Body: body}
	s.count++
	return s.mapper.NewEntity(&p, &pb)
}

// Update eases particle radii and removes expired particles.
// Returns the number of particles removed.
func (s *ParticleStore) Update(now float64) int {
	// First pass: collect expired entities (must complete before modifying)
	var toRemove []ecs.Entity

	query := s.filter.Query()
	for query.Next() {
		p, _ := query.Get()
		if p.Expired(now) {
			toRemove = append(toRemove, query.Entity())
			continue
		}
		p.Radius = p.FullRadius * EaseOut(p.Age(now))
	}

	// Second pass: remove entities (query iteration complete)
	for _, e := range toRemove {
		s.remove(e)
	}
	return len(toRemove)
}

func (s *ParticleStore) remove(e ecs.Entity) {
	_, pb := s.mapper.Get(e)
	if pb.Body != nil {
		s.space.RemoveBody(pb.Body)
	}
	s.mapper.Remove(e)
	s.count--
}

// Len returns the number of live particles.
func (s *ParticleStore) Len() int {
	return s.count
}

// Each calls fn for every live particle with its current position.
func (s *ParticleStore) Each(fn func(p *components.Particle, position cp.Vector)) {
	query := s.filter.Query()
	for query.Next() {
		p, pb := query.Get()
		fn(p, pb.Body.Position())
	}
}

// Clear removes every particle.
func (s *ParticleStore) Clear() {
	var all []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		s.remove(e)
	}
}
