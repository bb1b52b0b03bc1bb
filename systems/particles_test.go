package systems

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
)

func TestParticleStoreLifecycle(t *testing.T) {
	space := cp.NewSpace()
	store := NewParticleStore(space)

	store.Spawn(components.ParticleSpec{Name: "short", Radius: 1, Duration: 100}, 0)
	store.Spawn(components.ParticleSpec{Name: "long", Radius: 2, Duration: 1000}, 0)

	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}

	if removed := store.Update(50); removed != 0 {
		t.Errorf("Update(50) removed %d, want 0", removed)
	}

	radii := map[string]float64{}
	store.Each(func(p *components.Particle, _ cp.Vector) {
		radii[p.Name] = p.Radius
	})
	want := EaseOut(0.5)
	if math.Abs(radii["short"]-want) > 1e-9 {
		t.Errorf("short radius = %v, want %v", radii["short"], want)
	}

	if removed := store.Update(150); removed != 1 {
		t.Errorf("Update(150) removed %d, want 1", removed)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d after expiry, want 1", store.Len())
	}

	store.Clear()
	if store.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", store.Len())
	}
}

func TestParticleDrift(t *testing.T) {
	space := cp.NewSpace()
	store := NewParticleStore(space)
	store.Spawn(components.ParticleSpec{
		Name:     "puff",
		Velocity: cp.Vector{X: 6, Y: 0},
		Radius:   1,
		Duration: 1000,
	}, 0)

	for i := 0; i < 60; i++ {
		space.Step(1.0 / 60)
	}

	store.Each(func(_ *components.Particle, pos cp.Vector) {
		if math.Abs(pos.X-6) > 1e-6 {
			t.Errorf("particle X = %v after 1s at 6u/s, want 6", pos.X)
		}
	})
}
