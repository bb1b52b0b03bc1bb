package components

import "github.com/jakecoffman/cp"

// Particle is the lifetime component of a cosmetic particle entity.
type Particle struct {
	Name       string
	CreatedAt  float64 // tickTime in ms
	Duration   float64 // ms
	FullRadius float64
	Radius     float64 // Current radius, eased toward FullRadius
}

// Age returns the fraction of the lifetime used at tickTime, clamped to [0, 1].
func (p *Particle) Age(tickTime float64) float64 {
	if p.Duration <= 0 {
		return 1
	}
	a := (tickTime - p.CreatedAt) / p.Duration
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

// Expired reports whether the particle outlived its duration.
func (p *Particle) Expired(tickTime float64) bool {
	return tickTime-p.CreatedAt > p.Duration
}

// ParticleBody links a particle entity to its kinematic engine body.
type ParticleBody struct {
	Body *cp.Body
}
