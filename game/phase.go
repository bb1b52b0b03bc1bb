package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbital/config"
	"github.com/pthm-cable/orbital/shield"
	"github.com/pthm-cable/orbital/systems"
	"github.com/pthm-cable/orbital/telemetry"
)

// Phase is a step of the game flow.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseMainMenu
	PhaseMainMenuSelectPlayers
	PhaseNewGameIntro
	PhasePlayersPickShields
	PhasePlayersTurn
	PhasePlayersTurnAiming
	PhasePlayersTurnPowering
	PhasePlayersTurnFired
	PhasePlayersTurnJumped
	PhasePlayersTurnFiredEndsEarly
	PhaseEndRound
	PhasePause
	PhasePlay
)

var phaseNames = [...]string{
	"none",
	"main_menu",
	"main_menu_select_players",
	"new_game_intro",
	"players_pick_shields",
	"players_turn",
	"players_turn_aiming",
	"players_turn_powering",
	"players_turn_fired",
	"players_turn_jumped",
	"players_turn_fired_ends_early",
	"end_round",
	"pause",
	"play",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// AwaitsInput reports whether the on-turn player is expected to act.
func (p Phase) AwaitsInput() bool {
	switch p {
	case PhasePlayersPickShields, PhasePlayersTurn, PhasePlayersTurnAiming, PhasePlayersTurnPowering:
		return true
	}
	return false
}

// ErrWrongPhase is returned for player commands the current phase does
// not accept.
var ErrWrongPhase = errors.New("command not allowed in this phase")

// Clock supplies the phase handler's notion of now, in milliseconds.
type Clock interface {
	Now() float64
}

// SimClock is a manually advanced clock.
type SimClock struct {
	now float64
}

// Now returns the current time.
func (c *SimClock) Now() float64 { return c.now }

// Advance moves the clock forward by ms.
func (c *SimClock) Advance(ms float64) { c.now += ms }

// WallClock measures real time since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a wall clock at zero.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns milliseconds since the clock was created.
func (c *WallClock) Now() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// PhaseOptions holds the phase timings in ms plus the tick settings.
type PhaseOptions struct {
	PauseTime         float64
	IntroDuration     float64
	IntroSlowdown     float64
	MaxTurnDuration   float64
	QuickStartTime    float64
	OutroDuration     float64
	EndRoundTimeScale float64

	DT                 float64
	VelocityIterations int
	PositionIterations int

	StartCash float64
	Map       MapOptions
}

// PhaseOptionsFrom reads phase and tick settings from cfg.
func PhaseOptionsFrom(cfg *config.Config) PhaseOptions {
	p := cfg.Phases
	return PhaseOptions{
		PauseTime:          p.PauseTime,
		IntroDuration:      p.IntroDuration,
		IntroSlowdown:      p.IntroSlowdown,
		MaxTurnDuration:    p.MaxTurnDuration,
		QuickStartTime:     p.QuickStartTime,
		OutroDuration:      p.OutroDuration,
		EndRoundTimeScale:  p.EndRoundTimeScale,
		DT:                 cfg.Physics.DT,
		VelocityIterations: cfg.Physics.VelocityIterations,
		PositionIterations: cfg.Physics.PositionIterations,
		StartCash:          cfg.Players.StartCash,
		Map:                MapOptionsFrom(cfg),
	}
}

// PhaseHandler drives the game flow: it decides per frame whether and how
// fast the state ticks, and accepts player commands.
type PhaseHandler struct {
	state     *State
	clock     Clock
	opts      PhaseOptions
	predictor *Predictor
	hooks     *TelemetryHooks

	phase         Phase
	transitioning bool
	phaseStart    float64
	resume        Phase // Phase to return to when unpausing

	latest Prediction
}

// NewPhaseHandler creates a handler in the main menu. predictor and hooks
// may be nil.
func NewPhaseHandler(state *State, clock Clock, opts PhaseOptions, predictor *Predictor, hooks *TelemetryHooks) *PhaseHandler {
	h := &PhaseHandler{
		state:     state,
		clock:     clock,
		opts:      opts,
		predictor: predictor,
		hooks:     hooks,
	}
	h.MainMenu()
	return h
}

// Phase returns the current phase.
func (h *PhaseHandler) Phase() Phase { return h.phase }

// Transitioning reports whether the current phase is still easing in.
func (h *PhaseHandler) Transitioning() bool { return h.transitioning }

// State returns the game state.
func (h *PhaseHandler) State() *State { return h.state }

// OnTurn returns the player on turn.
func (h *PhaseHandler) OnTurn() *Player { return h.state.OnTurn() }

// Prediction returns the latest trajectory preview.
func (h *PhaseHandler) Prediction() Prediction { return h.latest }

func (h *PhaseHandler) elapsed() float64 {
	return h.clock.Now() - h.phaseStart
}

func (h *PhaseHandler) startTransition() {
	h.phaseStart = h.clock.Now()
	h.transitioning = true
}

func (h *PhaseHandler) startNewPhase(p Phase) {
	h.phase = p
	h.startTransition()
}

// Update runs one frame.
func (h *PhaseHandler) Update() {
	switch p := h.phase; {
	case p == PhasePause && h.transitioning:
		h.tickPausing(h.opts.PauseTime, h.elapsed(), 0)
	case p == PhasePause:
		return
	case p == PhasePlay && h.transitioning:
		if h.tickUnpausing(h.opts.PauseTime) {
			h.phase = h.resume
		}
	case p == PhaseNone, p == PhaseMainMenu, p == PhaseMainMenuSelectPlayers:
		return
	case p == PhaseNewGameIntro && h.transitioning:
		h.tickUnpausing(h.opts.PauseTime)
	case p == PhaseNewGameIntro:
		h.handleIntro()
	case p == PhasePlayersPickShields && h.transitioning:
		if h.elapsed() > h.opts.PauseTime {
			h.transitioning = false
		}
	case p == PhasePlayersPickShields, p == PhasePlayersTurn,
		p == PhasePlayersTurnAiming, p == PhasePlayersTurnPowering:
		return
	case (p == PhasePlayersTurnFired || p == PhasePlayersTurnJumped) && h.transitioning:
		h.tickUnpausing(h.opts.QuickStartTime)
	case p == PhasePlayersTurnFired, p == PhasePlayersTurnJumped:
		h.handlePlayerShot()
	case p == PhasePlayersTurnFiredEndsEarly:
		h.handlePlayerShotEndsEarly()
	case p == PhaseEndRound && h.transitioning:
		h.tickPausing(h.opts.OutroDuration, h.elapsed(), h.opts.EndRoundTimeScale)
	case p == PhaseEndRound:
		h.tick(h.opts.EndRoundTimeScale)
	default:
		h.tick(1)
	}
	h.hooks.flushPerf(h.state)
}

func (h *PhaseHandler) tick(scale float64) {
	h.state.TickClock(h.opts.DT*scale, h.opts.VelocityIterations, h.opts.PositionIterations)
}

// tickUnpausing eases the tick rate up over duration. Returns true once
// the transition is over.
func (h *PhaseHandler) tickUnpausing(duration float64) bool {
	step := h.elapsed() / duration
	if step >= 1 {
		h.transitioning = false
		return true
	}
	h.tick(systems.EaseOut(step))
	return false
}

// tickPausing eases the tick rate down to end over duration.
func (h *PhaseHandler) tickPausing(duration, elapsed, end float64) {
	step := elapsed / duration
	if step >= 1 {
		h.transitioning = false
		return
	}
	h.tick(systems.EaseIn(1-step)*(1-end) + end)
}

func (h *PhaseHandler) handleIntro() {
	o := h.opts
	switch e := h.elapsed(); {
	case e > o.IntroDuration:
		h.playerSelectsShield(nil)
	case e > o.IntroDuration-o.IntroSlowdown:
		h.tickPausing(o.IntroSlowdown, e-o.IntroDuration+o.IntroSlowdown, 0)
	default:
		h.tick(1)
	}
}

func (h *PhaseHandler) handlePlayerShot() {
	o := h.opts
	if h.turnSettled() {
		if !h.checkEndOfRound() {
			h.startNewPhase(PhasePlayersTurnFiredEndsEarly)
		}
		return
	}
	switch e := h.elapsed(); {
	case e > o.MaxTurnDuration:
		h.setupNextPlayersFireTurn()
	case e > o.MaxTurnDuration-o.PauseTime:
		h.tickPausing(o.PauseTime, e-o.MaxTurnDuration+o.PauseTime, 0)
	default:
		h.tick(1)
	}
}

func (h *PhaseHandler) handlePlayerShotEndsEarly() {
	if h.transitioning {
		h.tickPausing(h.opts.PauseTime, h.elapsed(), 0)
		return
	}
	h.setupNextPlayersFireTurn()
}

// turnSettled reports whether nothing is left moving: no warheads, no
// effects, and every vehicle resting on something heavy.
func (h *PhaseHandler) turnSettled() bool {
	s := h.state
	if len(s.Warheads()) > 0 || s.Particles().Len() > 0 {
		return false
	}
	for _, v := range s.Vehicles() {
		if !v.IsStable() {
			return false
		}
	}
	return true
}

// playerSelectsShield equips p's selected shield, then either hands the
// pick to the next player or starts the first fire turn once everybody
// has picked.
func (h *PhaseHandler) playerSelectsShield(p *Player) {
	if p != nil {
		h.state.EquipShield(p)
	}

	allPicked := true
	for _, pl := range h.state.Players() {
		if !pl.ShieldPicked {
			allPicked = false
			break
		}
	}
	if allPicked {
		h.setupNextPlayersFireTurn()
		return
	}

	for range h.state.Players() {
		if !h.state.NextPlayerOnTurn().ShieldPicked {
			break
		}
	}
	h.phase = PhasePlayersPickShields
}

func (h *PhaseHandler) setupNextPlayersFireTurn() {
	h.hooks.endTurn(h.state)
	if h.checkEndOfRound() {
		return
	}
	h.state.EndTurn()
	h.state.NextPlayerOnTurn()
	h.startNewPhase(PhasePlayersTurn)
	h.refreshPrediction()
}

// checkEndOfRound ends the round once fewer than two vehicles survive.
func (h *PhaseHandler) checkEndOfRound() bool {
	alive := 0
	for _, p := range h.state.Players() {
		if p.Alive() {
			alive++
		}
	}
	if alive >= 2 {
		return false
	}
	h.hooks.endTurn(h.state)
	h.hooks.endRound(h.state)
	h.startNewPhase(PhaseEndRound)
	return true
}

func (h *PhaseHandler) refreshPrediction() {
	if h.predictor == nil {
		return
	}
	p := h.predictor.Predict(h.state)
	if p.Stamp > h.latest.Stamp {
		h.latest = p
	}
}

// MainMenu returns to the main menu.
func (h *PhaseHandler) MainMenu() {
	h.phase = PhaseMainMenu
	h.transitioning = false
}

// SelectPlayers opens the player selection menu.
func (h *PhaseHandler) SelectPlayers() {
	h.phase = PhaseMainMenuSelectPlayers
	h.transitioning = false
}

// PlayerSetup names a player and tells who controls it.
type PlayerSetup struct {
	Name string
	Type PlayerType
}

// StartGame resets the state, seats the players, generates the map and
// starts the intro. The first player on turn is drawn from the state RNG.
func (h *PhaseHandler) StartGame(players []PlayerSetup) error {
	if len(players) < 2 {
		return fmt.Errorf("starting game: need at least 2 players, got %d", len(players))
	}

	s := h.state
	s.Reset()
	for i, p := range players {
		name := p.Name
		if len(name) <= 1 {
			name = fmt.Sprintf("Player %d", i+1)
		}
		s.AddPlayer(name, p.Type, h.opts.StartCash)
	}
	s.GenerateMap(h.opts.Map)
	s.SetOnTurn(s.Players()[s.Rand().IntN(len(players))])

	h.latest = Prediction{}
	h.hooks.beginRound(s)
	h.startNewPhase(PhaseNewGameIntro)
	return nil
}

func (h *PhaseHandler) require(cmd string, phases ...Phase) error {
	for _, p := range phases {
		if h.phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: %s during %s", ErrWrongPhase, cmd, h.phase)
}

var turnPhases = []Phase{PhasePlayersTurn, PhasePlayersTurnAiming, PhasePlayersTurnPowering}

// BeginAiming switches the turn to aim adjustment.
func (h *PhaseHandler) BeginAiming() error {
	if err := h.require("begin aiming", turnPhases...); err != nil {
		return err
	}
	h.startNewPhase(PhasePlayersTurnAiming)
	return nil
}

// BeginPowering switches the turn to power adjustment.
func (h *PhaseHandler) BeginPowering() error {
	if err := h.require("begin powering", turnPhases...); err != nil {
		return err
	}
	h.startNewPhase(PhasePlayersTurnPowering)
	return nil
}

// DoneAdjusting leaves aim or power adjustment.
func (h *PhaseHandler) DoneAdjusting() error {
	if err := h.require("done adjusting", PhasePlayersTurnAiming, PhasePlayersTurnPowering); err != nil {
		return err
	}
	h.phase = PhasePlayersTurn
	return nil
}

// Aim sets the on-turn player's aim angle and refreshes the preview.
func (h *PhaseHandler) Aim(angle float64) error {
	if err := h.require("aim", turnPhases...); err != nil {
		return err
	}
	h.state.OnTurn().Aim.Angle = systems.NormalizeAngle(angle)
	h.refreshPrediction()
	return nil
}

// Power sets the on-turn player's shot power and refreshes the preview.
func (h *PhaseHandler) Power(power float64) error {
	if err := h.require("power", turnPhases...); err != nil {
		return err
	}
	h.state.OnTurn().Aim.SetPower(power)
	h.refreshPrediction()
	return nil
}

// Fire shoots the on-turn player's warhead.
func (h *PhaseHandler) Fire() error {
	if err := h.require("fire", turnPhases...); err != nil {
		return err
	}
	p := h.state.OnTurn()
	h.state.FireWarhead(p)
	h.hooks.beginTurn(h.state, p, telemetry.ActionFire)
	h.startNewPhase(PhasePlayersTurnFired)
	return nil
}

// Jump launches the on-turn player's vehicle with the selected fuel.
func (h *PhaseHandler) Jump() error {
	if err := h.require("jump", turnPhases...); err != nil {
		return err
	}
	p := h.state.OnTurn()
	h.state.StartJump(p)
	h.hooks.beginTurn(h.state, p, telemetry.ActionJump)
	h.startNewPhase(PhasePlayersTurnJumped)
	return nil
}

// Thrust burns the on-turn player's fuel toward target after a jump.
func (h *PhaseHandler) Thrust(target cp.Vector) error {
	if err := h.require("thrust", PhasePlayersTurnJumped); err != nil {
		return err
	}
	h.state.StartThrust(h.state.OnTurn(), target)
	return nil
}

// EndThrust stops the burn.
func (h *PhaseHandler) EndThrust() error {
	if err := h.require("end thrust", PhasePlayersTurnJumped); err != nil {
		return err
	}
	h.state.EndThrust(h.state.OnTurn())
	return nil
}

// PickShield buys and equips a shield for the on-turn player.
func (h *PhaseHandler) PickShield(kind shield.Kind) error {
	if err := h.require("pick shield", PhasePlayersPickShields); err != nil {
		return err
	}
	p := h.state.OnTurn()
	h.state.SelectShield(p, kind)
	h.playerSelectsShield(p)
	return nil
}

// SkipShield passes on buying a shield.
func (h *PhaseHandler) SkipShield() error {
	if err := h.require("skip shield", PhasePlayersPickShields); err != nil {
		return err
	}
	h.state.OnTurn().ShieldPicked = true
	h.playerSelectsShield(nil)
	return nil
}

// TogglePause pauses any phase, or resumes the phase that was paused.
func (h *PhaseHandler) TogglePause() {
	switch h.phase {
	case PhasePause:
		h.phase = PhasePlay
	case PhasePlay:
		h.phase = PhasePause
	default:
		h.resume = h.phase
		h.phase = PhasePause
	}
	h.startTransition()
}
