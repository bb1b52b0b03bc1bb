package game

import (
	"log/slog"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/telemetry"
)

// TelemetryHooks feeds turn, round and perf records from the phase
// handler into telemetry. A nil *TelemetryHooks disables all of it.
type TelemetryHooks struct {
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	perf      *telemetry.PerfCollector
	logStats  bool

	perfInterval int // Ticks between perf flushes, 0 disables
	lastPerfTick int

	roundStart      float64
	roundStartTicks int
	turnPlayer      components.ID

	// OnRound, when set, receives every finished round.
	OnRound func(telemetry.RoundRecord)
}

// NewTelemetryHooks wires the collectors. output and perf may be nil.
func NewTelemetryHooks(collector *telemetry.Collector, output *telemetry.OutputManager, perf *telemetry.PerfCollector, logStats bool, perfInterval int) *TelemetryHooks {
	return &TelemetryHooks{
		collector:    collector,
		output:       output,
		perf:         perf,
		logStats:     logStats,
		perfInterval: perfInterval,
	}
}

func (t *TelemetryHooks) beginRound(s *State) {
	if t == nil {
		return
	}
	t.collector.BeginRound()
	t.roundStart = s.TickTime()
	t.roundStartTicks = s.Ticks()
	t.lastPerfTick = s.Ticks()
	s.TakeDamage()
}

func (t *TelemetryHooks) beginTurn(s *State, p *Player, action telemetry.Action) {
	if t == nil {
		return
	}
	t.collectDamage(s)
	t.turnPlayer = p.ID
	t.collector.BeginTurn(p.Name, action, p.Aim.Angle, p.Aim.Power, s.TickTime(), s.Ticks())
}

// endTurn closes the open turn, if any, and writes it out.
func (t *TelemetryHooks) endTurn(s *State) {
	if t == nil || !t.collector.InTurn() {
		return
	}
	t.collectDamage(s)

	var score, cash float64
	if p := s.Player(t.turnPlayer); p != nil {
		score, cash = p.Score, p.Cash
	}
	rec, _ := t.collector.EndTurn(s.TickTime(), s.Ticks(), score, cash)

	if t.logStats {
		slog.Info("turn",
			"round", rec.Round,
			"turn", rec.Turn,
			"player", rec.Player,
			"action", rec.Action,
			"damage", rec.DamageDealt,
			"self_damage", rec.SelfDamage,
			"kills", rec.Kills,
			"score", rec.Score,
		)
	}
	if err := t.output.WriteTurn(rec); err != nil {
		slog.Error("failed to write turn", "error", err)
	}
}

func (t *TelemetryHooks) endRound(s *State) {
	if t == nil {
		return
	}

	var winner string
	var topScore float64
	alive := 0
	for i, p := range s.Players() {
		if p.Alive() {
			alive++
			winner = p.Name
		}
		if i == 0 || p.Score > topScore {
			topScore = p.Score
		}
	}
	if alive != 1 {
		winner = ""
	}

	rec := t.collector.EndRound(len(s.Players()), s.TickTime()-t.roundStart, s.Ticks()-t.roundStartTicks, winner, topScore)
	if t.logStats {
		slog.Info("round",
			"round", rec.Round,
			"winner", rec.Winner,
			"turns", rec.Turns,
			"duration_ms", rec.DurationMS,
			"hit_rate", rec.HitRate,
		)
	}
	if err := t.output.WriteRound(rec); err != nil {
		slog.Error("failed to write round", "error", err)
	}
	if t.OnRound != nil {
		t.OnRound(rec)
	}
}

// collectDamage moves the state's damage log into the open turn.
func (t *TelemetryHooks) collectDamage(s *State) {
	for _, d := range s.TakeDamage() {
		from, to := s.Player(d.From), s.Player(d.To)
		if from == nil || to == nil {
			continue
		}
		t.collector.RecordDamage(telemetry.Damage{
			From:   from.Name,
			To:     to.Name,
			Amount: d.Amount,
			Kill:   d.Kill,
		})
	}
}

// flushPerf logs and writes perf stats every perfInterval ticks.
func (t *TelemetryHooks) flushPerf(s *State) {
	if t == nil || t.perf == nil || t.perfInterval <= 0 {
		return
	}
	if s.Ticks()-t.lastPerfTick < t.perfInterval {
		return
	}
	t.lastPerfTick = s.Ticks()

	stats := t.perf.Stats()
	if t.logStats {
		stats.LogStats()
	}
	if err := t.output.WritePerf(stats, s.Ticks()); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
