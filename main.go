package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/orbital/config"
	"github.com/pthm-cable/orbital/game"
	"github.com/pthm-cable/orbital/systems"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output turn, round and perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	rounds := flag.Int("rounds", 1, "Rounds to play (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Frames simulated per update call")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *debug {
		for _, info := range systems.NewSystemRegistry().All() {
			slog.Debug("tick step", "id", info.ID, "name", info.Name, "category", info.Category)
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
		Rounds:         *rounds,
	})
	if err != nil {
		slog.Error("failed to start match", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless match",
		"seed", rngSeed,
		"players", cfg.Players.Names,
		"rounds", *rounds,
		"max_ticks", *maxTicks,
		"steps_per_update", *stepsPerUpdate,
	)

	for !g.Done() {
		g.UpdateHeadless()

		if *maxTicks > 0 && g.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
	slog.Info("match finished", "rounds", g.Rounds(), "ticks", g.Tick())
}
