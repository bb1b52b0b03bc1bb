package game

import (
	"sync/atomic"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/config"
)

// PredictOptions bounds a trajectory prediction.
type PredictOptions struct {
	MaxDistance        float64 // Stop once the sampled path is this long
	Accuracy           float64 // 0..1, trades tick count for timestep length
	DT                 float64 // Seconds per tick at accuracy 1
	VelocityIterations int
	PositionIterations int
	MaxIterations      int     // Tick budget at accuracy 1
	SampleInterval     int     // Ticks between samples at accuracy 1
	NearbyDistance     float64 // Surface distance for the impact warning
}

// PredictOptionsFrom reads prediction settings from cfg.
func PredictOptionsFrom(cfg *config.Config) PredictOptions {
	return PredictOptions{
		MaxDistance:        cfg.Prediction.MaxDistance,
		Accuracy:           cfg.Prediction.Accuracy,
		DT:                 cfg.Physics.DT,
		VelocityIterations: cfg.Physics.VelocityIterations,
		PositionIterations: cfg.Physics.PositionIterations,
		MaxIterations:      cfg.Prediction.MaxIterations,
		SampleInterval:     cfg.Prediction.SampleInterval,
		NearbyDistance:     cfg.Prediction.NearbyDistance,
	}
}

// Prediction is the sampled path of a simulated shot.
type Prediction struct {
	Stamp         int64
	Path          []cp.Vector
	TotalDistance float64
	Nearby        []*Planet // Planets of the forked state close to the path end
	Impacted      bool      // The warhead was destroyed before the budget ran out
	Cancelled     bool      // A newer request superseded this one
}

// End returns the last sampled point.
func (p Prediction) End() (cp.Vector, bool) {
	if len(p.Path) == 0 {
		return cp.Vector{}, false
	}
	return p.Path[len(p.Path)-1], true
}

// Predictor forks the game state to preview where a shot will go.
// Predict is synchronous; Begin may be called from another goroutine to
// supersede a running request.
type Predictor struct {
	opts   PredictOptions
	latest atomic.Int64
}

// NewPredictor creates a predictor.
func NewPredictor(opts PredictOptions) *Predictor {
	if opts.Accuracy <= 0 || opts.Accuracy > 1 {
		opts.Accuracy = 1
	}
	return &Predictor{opts: opts}
}

// Options returns the predictor's settings.
func (p *Predictor) Options() PredictOptions { return p.opts }

// Begin issues a new request stamp. Requests with older stamps stop at
// their next tick.
func (p *Predictor) Begin() int64 {
	return p.latest.Add(1)
}

// Stale reports whether stamp has been superseded.
func (p *Predictor) Stale(stamp int64) bool {
	return stamp < p.latest.Load()
}

// Predict fires the on-turn player's current aim in a copy of parent and
// samples the warhead's path. parent is not modified.
func (p *Predictor) Predict(parent *State) Prediction {
	stamp := p.Begin()
	return p.run(parent.Clone(), stamp)
}

// PredictAim is Predict with aim replacing the on-turn player's aim.
func (p *Predictor) PredictAim(parent *State, aim components.Aim) Prediction {
	stamp := p.Begin()
	fork := parent.Clone()
	if fork.onTurn != nil {
		fork.onTurn.Aim = aim
	}
	return p.run(fork, stamp)
}

func (p *Predictor) run(s *State, stamp int64) Prediction {
	o := p.opts
	pred := Prediction{Stamp: stamp}

	player := s.onTurn
	if player == nil || player.Vehicle == nil || !player.Vehicle.Alive() {
		return pred
	}
	acc := o.Accuracy
	dt := o.DT / acc
	vIters := max(1, int(float64(o.VelocityIterations)*acc))
	pIters := max(1, int(float64(o.PositionIterations)*acc))
	budget := max(1, int(float64(o.MaxIterations)*acc))
	every := max(1, int(float64(o.SampleInterval)*acc))

	s.FireWarhead(player)
	s.TickClock(dt, vIters, pIters)

	tracked := player.LastWarhead
	w := s.Warhead(tracked)
	if w == nil {
		pred.Impacted = true
		return pred
	}
	prev := w.Position()
	pred.Path = append(pred.Path, prev)

	// Distance is summed every tick; the path keeps every few positions.
	for i := 1; i <= budget; i++ {
		if p.Stale(stamp) {
			pred.Cancelled = true
			break
		}
		s.TickClock(dt, vIters, pIters)

		if len(s.warheads) == 0 || player.LastWarhead != tracked {
			pred.Impacted = len(s.warheads) == 0
			break
		}
		if w = s.Warhead(tracked); w == nil {
			pred.Impacted = true
			break
		}

		pos := w.Position()
		pred.TotalDistance += pos.Distance(prev)
		prev = pos
		if pred.TotalDistance > o.MaxDistance {
			pred.Path = append(pred.Path, pos)
			break
		}
		if i%every == 0 {
			pred.Path = append(pred.Path, pos)
		}
	}

	last := pred.Path[len(pred.Path)-1]
	for _, planet := range s.planets {
		if planet.Position().Distance(last)-planet.Radius < o.NearbyDistance {
			pred.Nearby = append(pred.Nearby, planet)
		}
	}
	return pred
}
