package game

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/config"
	"github.com/pthm-cable/orbital/systems"
)

func generate(seed uint64, opts MapOptions) *State {
	s := NewState(StateOptions{Seed: seed, Gravity: systems.Gravity{G: .4}})
	s.AddPlayer("alice", PlayerHuman, 1000)
	s.AddPlayer("bob", PlayerHuman, 1000)
	s.GenerateMap(opts)
	return s
}

func TestGenerateMapLayout(t *testing.T) {
	opts := MapOptionsFrom(config.Default())
	s := generate(1, opts)

	if got, want := len(s.Planets()), 2+opts.SmallPlanets; got != want {
		t.Errorf("len(Planets()) = %d, want %d", got, want)
	}
	if got := len(s.Vehicles()); got != 2 {
		t.Fatalf("len(Vehicles()) = %d, want 2", got)
	}
	if s.Border() == nil {
		t.Fatal("Border() = nil")
	}
	if s.Border().Center != s.Planets()[0] {
		t.Errorf("border center = %s, want terra", s.Border().Center)
	}

	for i, v := range s.Vehicles() {
		want := cp.Vector{X: -opts.VehicleSpacing*float64(i) + 1, Y: opts.VehicleAltitude}
		if v.Position() != want {
			t.Errorf("vehicle %d at %v, want %v", i, v.Position(), want)
		}
		if v.Player != s.Players()[i] || s.Players()[i].Vehicle != v {
			t.Errorf("vehicle %d not linked to player %d", i, i)
		}
	}
}

func TestGenerateMapRingJitter(t *testing.T) {
	opts := MapOptionsFrom(config.Default())
	for i, p := range generate(1, opts).Planets()[2:] {
		r := p.Position().Length()
		base := float64(i)*.04 + opts.RingRadius
		if r < base-opts.RingJitter || r > base+opts.RingJitter {
			t.Errorf("rock %d at radius %v, want within %v of %v", i, r, opts.RingJitter, base)
		}
	}
}

func TestGenerateMapIsSeeded(t *testing.T) {
	opts := MapOptionsFrom(config.Default())
	a, b, c := generate(7, opts), generate(7, opts), generate(8, opts)

	same, differs := true, false
	for i := range a.Planets() {
		if a.Planets()[i].Position() != b.Planets()[i].Position() {
			same = false
		}
		if a.Planets()[i].Position() != c.Planets()[i].Position() {
			differs = true
		}
	}
	if !same {
		t.Error("same seed produced different maps")
	}
	if !differs {
		t.Error("different seeds produced identical maps")
	}
}
