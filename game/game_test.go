package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/orbital/config"
)

func newTestGame(t *testing.T, dir string) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.AI.FuncEvaluations = 3
	g, err := NewGameWithOptions(cfg, Options{Seed: 11, OutputDir: dir, StepsPerUpdate: 60, Rounds: 1})
	if err != nil {
		t.Fatalf("NewGameWithOptions error: %v", err)
	}
	return g
}

func TestNewGameStartsRound(t *testing.T) {
	g := newTestGame(t, "")
	defer g.Unload()

	if g.Handler().Phase() != PhaseNewGameIntro {
		t.Errorf("Phase() = %s, want %s", g.Handler().Phase(), PhaseNewGameIntro)
	}
	for _, p := range g.State().Players() {
		if p.Type != PlayerAI {
			t.Errorf("%s Type = %v, want ai", p.Name, p.Type)
		}
	}
	if g.Done() || g.Rounds() != 0 {
		t.Errorf("Done() = %v, Rounds() = %d, want a fresh match", g.Done(), g.Rounds())
	}
}

func TestHeadlessMatchWritesTurns(t *testing.T) {
	dir := t.TempDir()
	g := newTestGame(t, dir)

	for i := 0; i < 50; i++ {
		g.UpdateHeadless()
		if len(g.hooks.collector.Turns()) > 0 || g.Done() {
			break
		}
	}
	if len(g.hooks.collector.Turns()) == 0 {
		t.Fatalf("no turn finished after %d ticks", g.Tick())
	}
	g.Unload()

	data, err := os.ReadFile(filepath.Join(dir, "turns.csv"))
	if err != nil {
		t.Fatalf("reading turns.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		t.Errorf("turns.csv has %d lines, want header and a turn", len(lines))
	}
	if !strings.HasPrefix(lines[0], "round,turn,player,action") {
		t.Errorf("header = %q", lines[0])
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}
