package shield

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/systems"
)

const (
	vehicleID components.ID = 1
	ownerID   components.ID = 2
	enemyID   components.ID = 3
	warheadID components.ID = 4
)

func newBody(mass float64, pos cp.Vector) *cp.Body {
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, 1, cp.Vector{}))
	body.SetPosition(pos)
	return body
}

func contactAt(now float64, warheadPos cp.Vector) Contact {
	return Contact{
		Now:         now,
		DT:          16,
		Warhead:     warheadID,
		WarheadBody: newBody(1, warheadPos),
		VehicleBody: newBody(3, cp.Vector{}),
		FiredBy:     enemyID,
	}
}

func TestForceFieldAbsorbs(t *testing.T) {
	s := New(ForceField, vehicleID, ownerID, 0)

	got := s.BlockDamage(20, enemyID)

	if got >= 20 {
		t.Errorf("BlockDamage(20) = %v, want < 20", got)
	}
	if s.Energy >= DefaultEnergy {
		t.Errorf("Energy = %v, want < %v", s.Energy, DefaultEnergy)
	}
	want := math.Sqrt(65)*5 - 25
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("BlockDamage(20) = %v, want %v", got, want)
	}
}

func TestForceFieldBlockRatio(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		minPass float64
		maxPass float64
	}{
		{"small hit", 10, .8, .9},
		{"medium hit", 50, .55, .65},
		{"full hit", 100, .45, .55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(ForceField, vehicleID, ownerID, 0)
			ratio := s.BlockDamage(tt.amount, enemyID) / tt.amount
			if ratio < tt.minPass || ratio > tt.maxPass {
				t.Errorf("pass ratio = %v, want in [%v, %v]", ratio, tt.minPass, tt.maxPass)
			}
		})
	}
}

func TestForceFieldNoBlock(t *testing.T) {
	t.Run("self fired", func(t *testing.T) {
		s := New(ForceField, vehicleID, ownerID, 0)
		if got := s.BlockDamage(20, ownerID); got != 20 {
			t.Errorf("BlockDamage = %v, want 20", got)
		}
		if s.Energy != DefaultEnergy {
			t.Errorf("Energy = %v, want unchanged", s.Energy)
		}
	})

	t.Run("drained", func(t *testing.T) {
		s := New(ForceField, vehicleID, ownerID, 0)
		s.Energy = 0
		if got := s.BlockDamage(20, enemyID); got != 20 {
			t.Errorf("BlockDamage = %v, want 20", got)
		}
	})
}

func TestForceFieldHitDetonates(t *testing.T) {
	s := New(ForceField, vehicleID, ownerID, 0)

	out := s.Hit(contactAt(100, cp.Vector{X: 1.2}))

	if out.Keep {
		t.Error("Keep = true, want contact disabled")
	}
	if !out.Handled {
		t.Error("Handled = false, want true")
	}
	want := components.Detonate(warheadID, vehicleID)
	if len(out.Commands) != 1 || out.Commands[0] != want {
		t.Errorf("Commands = %v, want [%v]", out.Commands, want)
	}
	if len(s.Hits) != 1 {
		t.Errorf("len(Hits) = %d, want 1", len(s.Hits))
	}
}

func TestDeflectorKeepsContact(t *testing.T) {
	s := New(Deflector, vehicleID, ownerID, 0)

	out := s.Hit(contactAt(100, cp.Vector{X: 1.2}))

	if !out.Keep || out.Handled {
		t.Errorf("Keep, Handled = %v, %v, want true, false", out.Keep, out.Handled)
	}
	if len(out.Commands) != 1 || out.Commands[0].Kind != components.CmdDampSpin {
		t.Errorf("Commands = %v, want one damp_spin", out.Commands)
	}
	if s.Energy != DefaultEnergy-DeflectCost {
		t.Errorf("Energy = %v, want %v", s.Energy, DefaultEnergy-DeflectCost)
	}
	if got := s.BlockDamage(30, enemyID); got != 30 {
		t.Errorf("BlockDamage = %v, want 30", got)
	}
}

func TestDiamagnetorPushesAway(t *testing.T) {
	s := New(Diamagnetor, vehicleID, ownerID, 0)

	out := s.Hit(contactAt(100, cp.Vector{X: 2}))
	if out.Keep {
		t.Error("Keep = true, want contact disabled")
	}
	if len(out.Commands) != 1 {
		t.Fatalf("len(Commands) = %d, want 1", len(out.Commands))
	}
	knock := out.Commands[0]
	if knock.Kind != components.CmdKnock || knock.Subject != warheadID {
		t.Errorf("command = %v, want knock on warhead", knock)
	}
	if knock.Vector.X <= 0 || math.Abs(knock.Vector.Y) > 1e-9 {
		t.Errorf("impulse = %v, want along +X", knock.Vector)
	}
	if s.Energy >= DefaultEnergy {
		t.Errorf("Energy = %v, want spent", s.Energy)
	}

	// Within the same interval no further pulse is due
	if out := s.Hit(contactAt(120, cp.Vector{X: 2})); len(out.Commands) != 0 {
		t.Errorf("second pulse Commands = %v, want none", out.Commands)
	}
	if out := s.Hit(contactAt(160, cp.Vector{X: 2})); len(out.Commands) != 1 {
		t.Errorf("third pulse Commands = %v, want one", out.Commands)
	}
}

func TestDisintegratorHandles(t *testing.T) {
	s := New(Disintegrator, vehicleID, ownerID, 0)

	out := s.Hit(contactAt(100, cp.Vector{X: 1.2}))

	if out.Keep || !out.Handled {
		t.Errorf("Keep, Handled = %v, %v, want false, true", out.Keep, out.Handled)
	}
	if len(out.Commands) != 1 || out.Commands[0] != components.Disintegrate(warheadID) {
		t.Errorf("Commands = %v, want disintegrate", out.Commands)
	}
}

func TestActiveDefenderLaser(t *testing.T) {
	s := New(ActiveDefender, vehicleID, ownerID, 0)

	out := s.Hit(contactAt(100, cp.Vector{X: 10}))
	if len(out.Commands) != 1 {
		t.Fatalf("len(Commands) = %d, want 1", len(out.Commands))
	}
	laser := out.Commands[0]
	if laser.Kind != components.CmdLaser || laser.Subject != vehicleID || laser.Other != warheadID {
		t.Errorf("command = %v, want laser from vehicle to warhead", laser)
	}
	// First pulse is capped at 1.5 intervals
	if want := LaserPower * LaserInterval * 1.5 * .001; math.Abs(laser.Amount-want) > 1e-9 {
		t.Errorf("damage = %v, want %v", laser.Amount, want)
	}
}

func TestRefractor(t *testing.T) {
	s := New(Refractor, vehicleID, ownerID, 1000)

	if cmds, _ := s.Update(1500); len(cmds) != 0 {
		t.Errorf("Update before delay = %v, want none", cmds)
	}
	cmds, detach := s.Update(2000)
	if detach {
		t.Error("detach = true, want false")
	}
	if len(cmds) != 1 || cmds[0] != components.Escape(vehicleID) {
		t.Errorf("Update after delay = %v, want escape", cmds)
	}
	if cmds, _ := s.Update(3000); len(cmds) != 0 {
		t.Errorf("second escape = %v, want none", cmds)
	}

	if got := s.BlockDamage(40, enemyID); got != 40 {
		t.Errorf("BlockDamage = %v, want 40", got)
	}
	if _, detach := s.Update(3016); !detach {
		t.Error("detach = false after block, want true")
	}
}

func TestUpdateDetachesWhenSpent(t *testing.T) {
	s := New(Deflector, vehicleID, ownerID, 0)
	s.Hit(contactAt(100, cp.Vector{X: 1.2}))
	if _, detach := s.Update(200); detach {
		t.Error("detach with energy left, want false")
	}
	if a := s.HitAlpha(600); a <= 0 || a >= 1 {
		t.Errorf("HitAlpha = %v, want in (0, 1)", a)
	}

	s.Energy = 0
	if _, detach := s.Update(300); !detach {
		t.Error("detach = false while a hit is still fading, want true")
	}
}

func TestSpentShieldLetsContactThrough(t *testing.T) {
	tests := []Kind{ForceField, Deflector, Diamagnetor, Disintegrator, ActiveDefender}
	for _, kind := range tests {
		t.Run(kind.String(), func(t *testing.T) {
			s := New(kind, vehicleID, ownerID, 0)
			s.Energy = -5
			out := s.Hit(contactAt(100, cp.Vector{X: 1.2}))
			if !out.Keep || out.Handled || len(out.Commands) != 0 {
				t.Errorf("Hit on spent shield = %+v, want plain contact", out)
			}
			if s.Energy != -5 {
				t.Errorf("Energy = %v, want -5", s.Energy)
			}
			if len(s.Hits) != 0 {
				t.Errorf("len(Hits) = %d, want 0", len(s.Hits))
			}
		})
	}
}

func TestAttachAndTurnFilters(t *testing.T) {
	space := cp.NewSpace()
	body := space.AddBody(newBody(3, cp.Vector{}))
	s := New(ForceField, vehicleID, ownerID, 0)

	s.Attach(space, body, 7, "tag")
	if !s.Attached() {
		t.Fatal("Attached = false after Attach")
	}
	if got := s.Shape().Filter; got != systems.ShieldFilter(7, false) {
		t.Errorf("filter = %+v, want end-of-turn shield", got)
	}

	s.SetOnTurn()
	if got := s.Shape().Filter; got != systems.ShieldFilter(7, true) {
		t.Errorf("filter = %+v, want on-turn shield", got)
	}
	s.SetEndTurn()
	if got := s.Shape().Filter; got != systems.ShieldFilter(7, false) {
		t.Errorf("filter = %+v, want end-of-turn shield", got)
	}

	s.Detach(space)
	if s.Attached() {
		t.Error("Attached = true after Detach")
	}

	r := New(Refractor, vehicleID, ownerID, 0)
	r.Attach(space, body, 7, "tag")
	if r.Attached() {
		t.Error("Refractor attached a shape, want none")
	}
}

func TestCloneIndependent(t *testing.T) {
	s := New(ForceField, vehicleID, ownerID, 0)
	s.Hit(contactAt(100, cp.Vector{X: 1.2}))

	c := s.Clone()
	c.Energy = 10
	c.Hits[0].At = 999

	if s.Energy != DefaultEnergy {
		t.Errorf("original Energy = %v, want %v", s.Energy, DefaultEnergy)
	}
	if s.Hits[0].At != 100 {
		t.Errorf("original hit time = %v, want 100", s.Hits[0].At)
	}
	if c.Attached() {
		t.Error("clone is attached, want detached")
	}
}

func TestLookupUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Lookup of unknown kind did not panic")
		}
	}()
	Lookup(Kind(200))
}

func TestKindsSorted(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 6 {
		t.Fatalf("len(Kinds) = %d, want 6", len(kinds))
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Errorf("Kinds not sorted at %d: %v", i, kinds)
		}
	}
}
