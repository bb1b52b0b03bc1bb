package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/orbital/config"
	"github.com/pthm-cable/orbital/game"
	"github.com/pthm-cable/orbital/telemetry"
)

// FitnessEvaluator plays headless rounds and scores the aim solver.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []uint64
	baseConfig *config.Config

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestRounds  []telemetry.RoundRecord
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestRounds returns the round records of the best evaluation.
func (fe *FitnessEvaluator) BestRounds() []telemetry.RoundRecord {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestRounds
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
	round   *telemetry.RoundRecord // nil if the round hit the tick cap
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negative hit rate, scaled up by how hard the hits land.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			round := fe.runRound(x, s)
			quality := computeQuality(round)
			results[idx] = seedResult{
				fitness: computeFitness(round, quality),
				quality: quality,
				round:   round,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	var rounds []telemetry.RoundRecord
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.round != nil {
			rounds = append(rounds, *r.round)
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestRounds = rounds
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runRound plays one headless round with the candidate settings.
// Returns nil if the round is still going at maxTicks.
func (fe *FitnessEvaluator) runRound(x []float64, seed uint64) *telemetry.RoundRecord {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var round *telemetry.RoundRecord
	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:           seed,
		StepsPerUpdate: 60,
		Rounds:         1,
		OnRound: func(rec telemetry.RoundRecord) {
			round = &rec
		},
	})
	if err != nil {
		return nil
	}
	defer g.Unload()

	for !g.Done() && g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return round
}

// copyConfig returns a copy of the base config that candidates can modify.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(hitRate × (1.0 + 0.2 × quality))
// Hit rate dominates; quality adds up to 20% to separate settings with
// similar accuracy. An unfinished round scores 0.
func computeFitness(r *telemetry.RoundRecord, quality float64) float64 {
	if r == nil {
		return 0
	}
	return -(r.HitRate * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightDamage = 0.6
	qualityWeightPace   = 0.4

	qualityIdealTurns = 6.0 // Rounds around this many turns score full pace
)

// computeQuality scores a round in [0, 1] on damage per turn and pace.
func computeQuality(r *telemetry.RoundRecord) float64 {
	if r == nil || r.Turns == 0 {
		return 0
	}
	damageScore := clamp01(r.TurnDamageMean / game.WarheadDamage)

	logErr := math.Log(float64(r.Turns) / qualityIdealTurns)
	paceScore := math.Exp(-logErr * logErr)

	return clamp01(qualityWeightDamage*damageScore + qualityWeightPace*paceScore)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
