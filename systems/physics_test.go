package systems

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestGravitySymmetry(t *testing.T) {
	g := Gravity{G: 0.4}

	tests := []struct {
		name string
		a, b Attractor
	}{
		{"equal masses", Attractor{cp.Vector{X: 0, Y: 0}, 10}, Attractor{cp.Vector{X: 3, Y: 4}, 10}},
		{"unequal masses", Attractor{cp.Vector{X: -5, Y: 2}, 1800}, Attractor{cp.Vector{X: 12, Y: -7}, 3}},
		{"tiny separation", Attractor{cp.Vector{X: 1, Y: 1}, 1}, Attractor{cp.Vector{X: 1.001, Y: 1}, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fab := g.PairForce(tt.a, tt.b)
			fba := g.PairForce(tt.b, tt.a)

			sum := fab.Add(fba)
			if sum.Length() > 1e-9*math.Max(1, fab.Length()) {
				t.Errorf("F(a,b) + F(b,a) = %v, want zero (F(a,b) = %v)", sum, fab)
			}

			dist := tt.a.Position.Distance(tt.b.Position)
			want := g.G * tt.a.Mass * tt.b.Mass / (dist * dist)
			if math.Abs(fab.Length()-want) > 1e-9*want {
				t.Errorf("|F| = %v, want %v", fab.Length(), want)
			}

			// Force on a points toward b
			if fab.Dot(tt.b.Position.Sub(tt.a.Position)) <= 0 {
				t.Errorf("F(a,b) = %v does not point toward b", fab)
			}
		})
	}
}

func TestGravityForcesBalance(t *testing.T) {
	g := Gravity{G: 0.4}
	attractors := []Attractor{
		{cp.Vector{X: 0, Y: 0}, 1800},
		{cp.Vector{X: 15, Y: 0}, 20},
		{cp.Vector{X: -20, Y: 3}, 100},
		{cp.Vector{X: 2, Y: 10}, 3},
	}

	var net cp.Vector
	for _, f := range g.Forces(attractors) {
		net = net.Add(f)
	}
	if net.Length() > 1e-9 {
		t.Errorf("net internal force = %v, want zero", net)
	}
}

func TestGravityCutoff(t *testing.T) {
	g := Gravity{G: 1, Cutoff: 10}
	near := g.PairForce(Attractor{cp.Vector{}, 1}, Attractor{cp.Vector{X: 5}, 1})
	far := g.PairForce(Attractor{cp.Vector{}, 1}, Attractor{cp.Vector{X: 50}, 1})

	if near.Length() == 0 {
		t.Error("force within cutoff is zero")
	}
	if far.Length() != 0 {
		t.Errorf("force beyond cutoff = %v, want zero", far)
	}
}

func TestGravityCoincident(t *testing.T) {
	g := Gravity{G: 1}
	f := g.PairForce(Attractor{cp.Vector{X: 2, Y: 2}, 5}, Attractor{cp.Vector{X: 2, Y: 2}, 5})
	if f.X != 0 || f.Y != 0 || math.IsNaN(f.X) {
		t.Errorf("coincident force = %v, want zero", f)
	}
}

func TestKnock(t *testing.T) {
	body := cp.NewBody(2, cp.MomentForCircle(2, 0, 1, cp.Vector{}))
	Knock(body, 4, math.Pi/2)

	v := body.Velocity()
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-2) > 1e-9 {
		t.Errorf("velocity after knock = %v, want (0, 2)", v)
	}
}

func TestEasing(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
	}{
		{"EaseIn", EaseIn},
		{"EaseOut", EaseOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(0); math.Abs(got) > 1e-12 {
				t.Errorf("%s(0) = %v, want 0", tt.name, got)
			}
			if got := tt.fn(1); math.Abs(got-1) > 1e-12 {
				t.Errorf("%s(1) = %v, want 1", tt.name, got)
			}
			prev := 0.0
			for x := 0.05; x <= 1; x += 0.05 {
				if v := tt.fn(x); v < prev {
					t.Errorf("%s not monotonic at %v", tt.name, x)
				} else {
					prev = v
				}
			}
			if got := tt.fn(2); math.Abs(got-1) > 1e-12 {
				t.Errorf("%s(2) = %v, want clamped 1", tt.name, got)
			}
		})
	}

	if EaseIn(0.5) >= 0.5 || EaseOut(0.5) <= 0.5 {
		t.Errorf("EaseIn(0.5) = %v, EaseOut(0.5) = %v; want below and above 0.5", EaseIn(0.5), EaseOut(0.5))
	}
}

func TestDirection(t *testing.T) {
	got := Direction(cp.Vector{X: 1, Y: 1}, cp.Vector{X: 1, Y: 5})
	if math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("Direction = %v, want Pi/2", got)
	}
	if d := NormalizeAngle(3 * math.Pi); math.Abs(math.Abs(d)-math.Pi) > 1e-12 {
		t.Errorf("NormalizeAngle(3Pi) = %v, want +-Pi", d)
	}
}

func TestPIDConverges(t *testing.T) {
	pid := NewPID(0.3, 0.001, 2)
	// First reaction is proportional plus derivative from rest
	got := pid.Reaction(1, 0)
	want := 1*0.3 + 1*0.001 + 1*2.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Reaction = %v, want %v", got, want)
	}
	// Steady error: derivative vanishes, integral grows
	got = pid.Reaction(1, 0)
	want = 0.3 + 2*0.001
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("second Reaction = %v, want %v", got, want)
	}
}

func TestSystemRegistryOrder(t *testing.T) {
	reg := NewSystemRegistry()
	want := []string{SysPhysics, SysCommands, SysGravity, SysTrails, SysVehicles, SysWarheads, SysParticles, SysBorder}

	ids := reg.IDs()
	if len(ids) != len(want) {
		t.Fatalf("len(IDs) = %d, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if got := reg.GetName(SysGravity); got != "Gravity" {
		t.Errorf("GetName(gravity) = %q, want Gravity", got)
	}
	if got := reg.GetName("missing"); got != "missing" {
		t.Errorf("GetName(missing) = %q, want fallback to id", got)
	}
	if got := len(reg.ByCategory("physics")); got != 2 {
		t.Errorf("len(ByCategory(physics)) = %d, want 2", got)
	}
}
