package game

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/config"
	"github.com/pthm-cable/orbital/shield"
	"github.com/pthm-cable/orbital/systems"
)

func TestAffordableShield(t *testing.T) {
	tests := []struct {
		cash   float64
		want   shield.Kind
		wantOK bool
	}{
		{2000, shield.ActiveDefender, true},
		{1000, shield.Diamagnetor, true},
		{400, shield.ForceField, true},
		{300, shield.Refractor, true},
		{100, 0, false},
	}

	for _, tt := range tests {
		got, ok := affordableShield(tt.cash)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("affordableShield(%v) = (%v, %v), want (%v, %v)", tt.cash, got, ok, tt.want, tt.wantOK)
		}
	}
}

func testAIOptions() AIOptions {
	predict := testPredictOptions()
	predict.Accuracy = .5
	predict.MaxDistance = 50
	return AIOptions{FuncEvaluations: 10, InitialPower: 60, Predict: predict}
}

func TestAimSolverHitsStraightShot(t *testing.T) {
	s := newTestState(t)
	p, _ := addTestVehicle(s, "alice", cp.Vector{})
	addTestVehicle(s, "bob", cp.Vector{X: 10})
	s.SetOnTurn(p)
	live := p.Aim

	res, err := NewAimSolver(testAIOptions()).Solve(s)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}
	if res.Miss >= 1.5 {
		t.Errorf("Miss = %v, want a near hit", res.Miss)
	}
	if res.Evaluations == 0 {
		t.Error("Evaluations = 0")
	}
	if p.Aim != live {
		t.Errorf("live Aim = %+v, want unchanged %+v", p.Aim, live)
	}
	if len(s.Warheads()) != 0 {
		t.Errorf("len(Warheads()) = %d, want 0", len(s.Warheads()))
	}
}

func TestAimSolverNoTarget(t *testing.T) {
	s := newTestState(t)
	p, _ := addTestVehicle(s, "alice", cp.Vector{})
	_, other := addTestVehicle(s, "bob", cp.Vector{X: 10})
	other.HitPoints = 0
	s.SetOnTurn(p)

	if _, err := NewAimSolver(testAIOptions()).Solve(s); !errors.Is(err, ErrNoTarget) {
		t.Errorf("Solve error = %v, want ErrNoTarget", err)
	}
}

func TestMissDistance(t *testing.T) {
	s := newTestState(t)
	_, v := addTestVehicle(s, "bob", cp.Vector{X: 10})
	pred := Prediction{Path: []cp.Vector{{X: 0}, {X: 5}, {X: 8}, {X: 10.5}}}

	if got := missDistance(pred, []*Vehicle{v}); got != 0 {
		t.Errorf("missDistance = %v, want 0 for a point past the hull", got)
	}
	pred.Path = pred.Path[:3]
	if got, want := missDistance(pred, []*Vehicle{v}), 2-VehicleRadius; got != want {
		t.Errorf("missDistance = %v, want %v", got, want)
	}
}

func TestAIControllerPlaysTurn(t *testing.T) {
	cfg := config.Default()
	cfg.AI.FuncEvaluations = 3
	s := NewState(StateOptions{Seed: 5, Gravity: systems.Gravity{G: cfg.Physics.GravitationalConst}})
	clock := &SimClock{}
	h := NewPhaseHandler(s, clock, PhaseOptionsFrom(cfg), nil, nil)
	ai := NewAIController(NewAimSolver(AIOptionsFrom(cfg)))

	err := h.StartGame([]PlayerSetup{{Name: "hal", Type: PlayerAI}, {Name: "eve", Type: PlayerAI}})
	if err != nil {
		t.Fatalf("StartGame error: %v", err)
	}
	if err := ai.Act(h); err != nil {
		t.Fatalf("Act during intro error: %v", err)
	}
	if h.Phase() != PhaseNewGameIntro {
		t.Fatalf("Phase() = %s, want AI to wait out the intro", h.Phase())
	}

	runUntil(h, clock, 600, inPhase(h, PhasePlayersPickShields))
	for i := 0; i < 2; i++ {
		if err := ai.Act(h); err != nil {
			t.Fatalf("Act during shield pick error: %v", err)
		}
	}
	for _, p := range s.Players() {
		if p.Vehicle.Shield == nil || p.Vehicle.Shield.Kind != shield.Diamagnetor {
			t.Errorf("%s has no diamagnetor", p.Name)
		}
	}
	if h.Phase() != PhasePlayersTurn {
		t.Fatalf("Phase() = %s, want %s", h.Phase(), PhasePlayersTurn)
	}

	if err := ai.Act(h); err != nil {
		t.Fatalf("Act during turn error: %v", err)
	}
	if h.Phase() != PhasePlayersTurnFired {
		t.Errorf("Phase() = %s, want %s", h.Phase(), PhasePlayersTurnFired)
	}
}

func TestAIControllerIgnoresHumans(t *testing.T) {
	h, clock := newTestHandler(t, nil)
	startFireTurn(t, h, clock)
	ai := NewAIController(NewAimSolver(testAIOptions()))

	if err := ai.Act(h); err != nil {
		t.Fatalf("Act error: %v", err)
	}
	if h.Phase() != PhasePlayersTurn {
		t.Errorf("Phase() = %s, want AI to leave a human turn alone", h.Phase())
	}
}
