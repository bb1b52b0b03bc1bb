package components

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestTrailThreshold(t *testing.T) {
	tr := NewTrail()

	tests := []struct {
		name string
		p    cp.Vector
		want bool
	}{
		{"first point always recorded", cp.Vector{X: 0, Y: 0}, true},
		{"within threshold", cp.Vector{X: 3, Y: 0}, false},
		{"exactly threshold", cp.Vector{X: 5, Y: 0}, false},
		{"beyond threshold", cp.Vector{X: 5.5, Y: 0}, true},
		{"measured from last recorded", cp.Vector{X: 10, Y: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.Add(tt.p); got != tt.want {
				t.Errorf("Add(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if tr.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tr.Len())
	}
}

func TestTrailCapacity(t *testing.T) {
	tr := NewTrail()
	for i := 0; i < TrailCapacity+20; i++ {
		tr.Add(cp.Vector{X: float64(i) * 10})
	}

	if tr.Len() != TrailCapacity {
		t.Fatalf("Len() = %d, want %d", tr.Len(), TrailCapacity)
	}

	pts := tr.Points()
	if pts[0].X != 200 {
		t.Errorf("oldest X = %v, want 200", pts[0].X)
	}
	if last := tr.Last(); last.X != float64(TrailCapacity+19)*10 {
		t.Errorf("Last().X = %v, want %v", last.X, float64(TrailCapacity+19)*10)
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].X <= pts[i-1].X {
			t.Fatalf("points out of order at %d: %v then %v", i, pts[i-1].X, pts[i].X)
		}
	}
}

func TestTrailCloneIndependent(t *testing.T) {
	tr := NewTrail()
	tr.Add(cp.Vector{X: 0})
	c := tr.Clone()
	c.Add(cp.Vector{X: 100})

	if tr.Len() != 1 {
		t.Errorf("original Len() = %d after clone append, want 1", tr.Len())
	}
	if c.Len() != 2 {
		t.Errorf("clone Len() = %d, want 2", c.Len())
	}
}

func TestParticleAge(t *testing.T) {
	p := Particle{CreatedAt: 1000, Duration: 500}

	tests := []struct {
		tick    float64
		age     float64
		expired bool
	}{
		{900, 0, false},
		{1000, 0, false},
		{1250, 0.5, false},
		{1500, 1, false},
		{1501, 1, true},
	}

	for _, tt := range tests {
		if got := p.Age(tt.tick); got != tt.age {
			t.Errorf("Age(%v) = %v, want %v", tt.tick, got, tt.age)
		}
		if got := p.Expired(tt.tick); got != tt.expired {
			t.Errorf("Expired(%v) = %v, want %v", tt.tick, got, tt.expired)
		}
	}
}

func TestKindParticipation(t *testing.T) {
	tests := []struct {
		kind    Kind
		gravity bool
		trailed bool
	}{
		{KindPlanet, true, false},
		{KindVehicle, true, true},
		{KindWarhead, true, true},
		{KindParticle, false, false},
		{KindShield, false, false},
		{KindBorder, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.Gravity(); got != tt.gravity {
				t.Errorf("Gravity() = %v, want %v", got, tt.gravity)
			}
			if got := tt.kind.Trailed(); got != tt.trailed {
				t.Errorf("Trailed() = %v, want %v", got, tt.trailed)
			}
		})
	}
}

func TestAimSetPowerClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, MinPower},
		{42, 42},
		{150, MaxPower},
	}

	for _, tt := range tests {
		a := NewAim(0)
		a.SetPower(tt.in)
		if a.Power != tt.want {
			t.Errorf("SetPower(%v): Power = %v, want %v", tt.in, a.Power, tt.want)
		}
	}
}
