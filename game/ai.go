package game

import (
	"errors"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/orbital/components"
	"github.com/pthm-cable/orbital/config"
	"github.com/pthm-cable/orbital/shield"
	"github.com/pthm-cable/orbital/systems"
)

// AIOptions configures the aim solver.
type AIOptions struct {
	FuncEvaluations int
	InitialPower    float64
	Predict         PredictOptions
}

// AIOptionsFrom reads solver settings from cfg. Candidate shots use the
// AI's own accuracy and path budget.
func AIOptionsFrom(cfg *config.Config) AIOptions {
	predict := PredictOptionsFrom(cfg)
	predict.Accuracy = cfg.AI.Accuracy
	predict.MaxDistance = cfg.AI.MaxDistance
	return AIOptions{
		FuncEvaluations: cfg.AI.FuncEvaluations,
		InitialPower:    cfg.AI.InitialPower,
		Predict:         predict,
	}
}

// AimResult is the best shot the solver found.
type AimResult struct {
	Aim         components.Aim
	Miss        float64 // Closest predicted approach to an enemy hull
	Evaluations int
}

// AimSolver picks angle and power by minimizing the predicted miss
// distance to the nearest living enemy.
type AimSolver struct {
	opts      AIOptions
	predictor *Predictor
}

// NewAimSolver creates a solver.
func NewAimSolver(opts AIOptions) *AimSolver {
	if opts.FuncEvaluations < 1 {
		opts.FuncEvaluations = 1
	}
	return &AimSolver{opts: opts, predictor: NewPredictor(opts.Predict)}
}

// ErrNoTarget is returned when the on-turn player has nobody to shoot at.
var ErrNoTarget = errors.New("no living enemy vehicle")

// Solve searches for the on-turn player's best shot. s is not modified.
func (a *AimSolver) Solve(s *State) (AimResult, error) {
	p := s.OnTurn()
	if p == nil || p.Vehicle == nil {
		return AimResult{}, errors.New("aim solver: no vehicle on turn")
	}

	var targets []*Vehicle
	for _, v := range s.Vehicles() {
		if v.Player != p && v.Alive() {
			targets = append(targets, v)
		}
	}
	if len(targets) == 0 {
		return AimResult{Aim: p.Aim}, ErrNoTarget
	}

	origin := p.Vehicle.Position()
	nearest := targets[0]
	for _, v := range targets[1:] {
		if v.Position().Distance(origin) < nearest.Position().Distance(origin) {
			nearest = v
		}
	}

	best := AimResult{Miss: math.Inf(1)}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			aim := components.Aim{Angle: systems.NormalizeAngle(x[0])}
			aim.SetPower(x[1] * components.MaxPower)
			// Pull the search back into the valid power range
			penalty := math.Abs(x[1]*components.MaxPower-aim.Power) * .1

			miss := missDistance(a.predictor.PredictAim(s, aim), targets)
			best.Evaluations++
			if miss < best.Miss {
				best.Miss = miss
				best.Aim = aim
			}
			return miss + penalty
		},
	}

	initX := []float64{
		systems.Direction(origin, nearest.Position()),
		a.opts.InitialPower / components.MaxPower,
	}
	settings := &optimize.Settings{FuncEvaluations: a.opts.FuncEvaluations}
	method := &optimize.NelderMead{SimplexSize: .2}

	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		slog.Debug("aim search ended", "player", p.Name, "error", err)
	}
	if best.Evaluations == 0 {
		return AimResult{Aim: p.Aim}, errors.New("aim solver: no shot evaluated")
	}
	return best, nil
}

// missDistance is the closest any sampled point comes to a target hull.
func missDistance(pred Prediction, targets []*Vehicle) float64 {
	miss := math.Inf(1)
	for _, point := range pred.Path {
		for _, v := range targets {
			d := math.Max(0, point.Distance(v.Position())-v.Radius)
			miss = math.Min(miss, d)
		}
	}
	return miss
}

// AIController plays for AI players whenever the phase handler waits for
// their input.
type AIController struct {
	solver *AimSolver
}

// NewAIController creates a controller.
func NewAIController(solver *AimSolver) *AIController {
	return &AIController{solver: solver}
}

// Act makes the on-turn AI player's move, if one is due.
func (c *AIController) Act(h *PhaseHandler) error {
	p := h.OnTurn()
	if !h.Phase().AwaitsInput() || p == nil || p.Type != PlayerAI {
		return nil
	}

	if h.Phase() == PhasePlayersPickShields {
		kind, ok := affordableShield(p.Cash)
		if !ok {
			return h.SkipShield()
		}
		return h.PickShield(kind)
	}

	res, err := c.solver.Solve(h.State())
	if err != nil && !errors.Is(err, ErrNoTarget) {
		return err
	}
	if err := h.Aim(res.Aim.Angle); err != nil {
		return err
	}
	if err := h.Power(res.Aim.Power); err != nil {
		return err
	}
	slog.Debug("ai fires", "player", p.Name, "angle", res.Aim.Angle, "power", res.Aim.Power, "miss", res.Miss)
	return h.Fire()
}

// affordableShield returns the most expensive shield within cash.
func affordableShield(cash float64) (shield.Kind, bool) {
	var best shield.Kind
	price := -1
	for _, k := range shield.Kinds() {
		spec := shield.Lookup(k)
		if float64(spec.Price) <= cash && spec.Price > price {
			best, price = k, spec.Price
		}
	}
	return best, price >= 0
}
