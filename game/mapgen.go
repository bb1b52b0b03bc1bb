package game

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/config"
)

// MapOptions lays out a new round.
type MapOptions struct {
	SmallPlanets    int
	RingRadius      float64
	RingSpeed       float64
	RingJitter      float64 // Max radial offset of a ring planet
	VehicleSpacing  float64
	VehicleAltitude float64
	BorderRadius    float64
}

// MapOptionsFrom reads the map layout from cfg.
func MapOptionsFrom(cfg *config.Config) MapOptions {
	m := cfg.Map
	return MapOptions{
		SmallPlanets:    m.SmallPlanets,
		RingRadius:      m.RingRadius,
		RingSpeed:       m.RingSpeed,
		RingJitter:      m.RingJitter,
		VehicleSpacing:  m.VehicleSpacing,
		VehicleAltitude: m.VehicleAltitude,
		BorderRadius:    m.BorderRadius,
	}
}

// GenerateMap populates the state with the home planet, its moon, a ring
// of small planets, one vehicle per player and the border. Ring jitter
// draws from the state's RNG, so a seed reproduces the map.
func (s *State) GenerateMap(opts MapOptions) {
	terra := s.AddPlanet("terra", components.BodySpec{
		Mass:            1800,
		Radius:          4.5,
		AngularVelocity: .1,
		Elasticity:      .3,
	})

	s.AddPlanet("luna", components.BodySpec{
		Position:        cp.Vector{X: -20},
		Velocity:        cp.Vector{Y: 4.8},
		AngularVelocity: -.4,
		Mass:            100,
		Radius:          1.25,
		Elasticity:      .5,
	})

	for i := 0; i < opts.SmallPlanets; i++ {
		angle := 2 * math.Pi * .07 * float64(i)
		radius := float64(i)*.04 + opts.RingRadius + (s.rng.Float64()*2-1)*opts.RingJitter
		dir := cp.Vector{X: math.Cos(angle), Y: math.Sin(angle)}

		s.AddPlanet("rock", components.BodySpec{
			Position: dir.Mult(radius),
			Velocity: dir.Perp().Mult(opts.RingSpeed),
			Mass:     .3 * float64(i%6+1),
			Radius:   .2 + float64(i%6)*.05,
			Friction: .6,
		})
	}

	n := float64(len(s.players))
	for i, p := range s.players {
		s.AddVehicle(p, components.BodySpec{
			Position: cp.Vector{X: -opts.VehicleSpacing*float64(i) + .5*n, Y: opts.VehicleAltitude},
			Angle:    float64(i),
		})
	}

	s.SetBorder(terra, opts.BorderRadius)
}
