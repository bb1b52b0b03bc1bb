package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/orbital/config"
	"github.com/pthm-cable/orbital/systems"
	"github.com/pthm-cable/orbital/telemetry"
)

// Options configures a headless match run.
type Options struct {
	Seed           uint64
	LogStats       bool
	OutputDir      string
	StepsPerUpdate int // Frames simulated per UpdateHeadless call
	Rounds         int // Rounds to play, 0 = until stopped

	// OnRound, when set, receives every finished round.
	OnRound func(telemetry.RoundRecord)
}

// Game runs rounds back to back on a simulated clock, with every player
// driven by the aim solver.
type Game struct {
	cfg   *config.Config
	opts  Options
	state *State
	clock *SimClock

	handler *PhaseHandler
	ai      *AIController
	hooks   *TelemetryHooks
	output  *telemetry.OutputManager
	perf    *telemetry.PerfCollector

	frameMillis float64
	rounds      int
	pastTicks   int // Ticks of finished rounds
	done        bool
}

// NewGameWithOptions builds a match from cfg and starts the first round.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	state := NewState(StateOptions{
		Seed:    opts.Seed,
		Gravity: systems.Gravity{G: cfg.Physics.GravitationalConst, Cutoff: cfg.Physics.GravityCutoff},
		Perf:    perf,
	})
	clock := &SimClock{}
	hooks := NewTelemetryHooks(telemetry.NewCollector(opts.Seed), output, perf, opts.LogStats, cfg.Telemetry.PerfLogInterval)

	g := &Game{
		cfg:         cfg,
		opts:        opts,
		state:       state,
		clock:       clock,
		handler:     NewPhaseHandler(state, clock, PhaseOptionsFrom(cfg), NewPredictor(PredictOptionsFrom(cfg)), hooks),
		ai:          NewAIController(NewAimSolver(AIOptionsFrom(cfg))),
		hooks:       hooks,
		output:      output,
		perf:        perf,
		frameMillis: cfg.Derived.TickMillis,
	}
	hooks.OnRound = func(rec telemetry.RoundRecord) {
		g.rounds++
		if opts.OnRound != nil {
			opts.OnRound(rec)
		}
	}

	if err := g.startRound(); err != nil {
		output.Close()
		return nil, err
	}
	return g, nil
}

func (g *Game) startRound() error {
	players := make([]PlayerSetup, len(g.cfg.Players.Names))
	for i, name := range g.cfg.Players.Names {
		if !g.cfg.Derived.AIControlled[name] {
			slog.Warn("no input source for human player, using the aim solver", "player", name)
		}
		players[i] = PlayerSetup{Name: name, Type: PlayerAI}
	}

	g.pastTicks += g.state.Ticks()
	g.state.SetSeed(g.opts.Seed + uint64(g.rounds))
	if err := g.handler.StartGame(players); err != nil {
		return err
	}
	slog.Info("round started",
		"round", g.rounds+1,
		"players", len(players),
		"on_turn", g.state.OnTurn().Name,
	)
	return nil
}

// UpdateHeadless simulates StepsPerUpdate frames.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.opts.StepsPerUpdate && !g.done; i++ {
		g.frame()
	}
}

func (g *Game) frame() {
	g.perf.RecordFrame()
	g.clock.Advance(g.frameMillis)

	if err := g.ai.Act(g.handler); err != nil {
		slog.Error("ai move failed", "player", g.state.OnTurn().Name, "error", err)
	}
	g.handler.Update()

	if g.handler.Phase() != PhaseEndRound || g.handler.Transitioning() {
		return
	}
	if g.opts.Rounds > 0 && g.rounds >= g.opts.Rounds {
		g.done = true
		return
	}
	if err := g.startRound(); err != nil {
		slog.Error("failed to start round", "error", err)
		g.done = true
	}
}

// Done reports whether all requested rounds have been played.
func (g *Game) Done() bool { return g.done }

// Rounds returns the number of finished rounds.
func (g *Game) Rounds() int { return g.rounds }

// Tick returns the ticks run across all rounds.
func (g *Game) Tick() int { return g.pastTicks + g.state.Ticks() }

// State returns the live game state.
func (g *Game) State() *State { return g.state }

// Handler returns the phase handler.
func (g *Game) Handler() *PhaseHandler { return g.handler }

// Unload flushes and closes the output files.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
