package game

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/telemetry"
)

func TestTelemetryHooksRecordTurn(t *testing.T) {
	s := newTestState(t)
	shooter, _ := addTestVehicle(s, "alice", cp.Vector{X: -20})
	_, victim := addTestVehicle(s, "bob", cp.Vector{})

	var rounds []telemetry.RoundRecord
	hooks := NewTelemetryHooks(telemetry.NewCollector(1), nil, nil, false, 0)
	hooks.OnRound = func(r telemetry.RoundRecord) { rounds = append(rounds, r) }

	hooks.beginRound(s)
	hooks.beginTurn(s, shooter, telemetry.ActionFire)
	s.detonate(addTestWarhead(s, shooter, cp.Vector{X: .95}, cp.Vector{}), victim.ID)
	hooks.endTurn(s)

	turns := hooks.collector.Turns()
	if len(turns) != 1 {
		t.Fatalf("len(Turns()) = %d, want 1", len(turns))
	}
	if turns[0].Player != "alice" {
		t.Errorf("Player = %q, want alice", turns[0].Player)
	}
	if turns[0].DamageDealt != 50 {
		t.Errorf("DamageDealt = %v, want 50", turns[0].DamageDealt)
	}
	if turns[0].Score != shooter.Score {
		t.Errorf("Score = %v, want %v", turns[0].Score, shooter.Score)
	}

	victim.HitPoints = 0
	hooks.endRound(s)
	if len(rounds) != 1 {
		t.Fatalf("OnRound called %d times, want 1", len(rounds))
	}
	if rounds[0].Winner != "alice" {
		t.Errorf("Winner = %q, want alice", rounds[0].Winner)
	}
}

func TestNilTelemetryHooks(t *testing.T) {
	s := newTestState(t)
	p, _ := addTestVehicle(s, "alice", cp.Vector{})

	var hooks *TelemetryHooks
	hooks.beginRound(s)
	hooks.beginTurn(s, p, telemetry.ActionFire)
	hooks.endTurn(s)
	hooks.endRound(s)
	hooks.flushPerf(s)
}
