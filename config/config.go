// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all match configuration parameters.
type Config struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Prediction PredictionConfig `yaml:"prediction"`
	Phases     PhasesConfig     `yaml:"phases"`
	Map        MapConfig        `yaml:"map"`
	Players    PlayersConfig    `yaml:"players"`
	AI         AIConfig         `yaml:"ai"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// PhysicsConfig holds the tick timestep and solver settings.
type PhysicsConfig struct {
	DT                 float64 `yaml:"dt"`                  // Seconds per tick
	VelocityIterations int     `yaml:"velocity_iterations"` // Solver velocity passes
	PositionIterations int     `yaml:"position_iterations"` // Solver position passes
	GravitationalConst float64 `yaml:"gravitational_const"` // G in G*m1*m2/r^2
	GravityCutoff      float64 `yaml:"gravity_cutoff"`      // Skip pairs further apart than this (0 = off)
}

// PredictionConfig holds the trajectory prediction budget.
type PredictionConfig struct {
	MaxDistance    float64 `yaml:"max_distance"`    // Stop once the path is this long
	Accuracy       float64 `yaml:"accuracy"`        // 0..1, scales iterations and timestep
	MaxIterations  int     `yaml:"max_iterations"`  // Tick budget at accuracy 1
	SampleInterval int     `yaml:"sample_interval"` // Ticks between samples at accuracy 1
	NearbyDistance float64 `yaml:"nearby_distance"` // Surface distance for impact warnings
}

// PhasesConfig holds phase handler timings in milliseconds.
type PhasesConfig struct {
	PauseTime         float64 `yaml:"pause_time"`
	IntroDuration     float64 `yaml:"intro_duration"`
	IntroSlowdown     float64 `yaml:"intro_slowdown"`
	MaxTurnDuration   float64 `yaml:"max_turn_duration"`
	QuickStartTime    float64 `yaml:"quick_start_time"`
	OutroDuration     float64 `yaml:"outro_duration"`
	EndRoundTimeScale float64 `yaml:"end_round_time_scale"`
}

// MapConfig holds the new-game map layout.
type MapConfig struct {
	SmallPlanets    int     `yaml:"small_planets"`
	RingRadius      float64 `yaml:"ring_radius"`
	RingSpeed       float64 `yaml:"ring_speed"`
	RingJitter      float64 `yaml:"ring_jitter"`
	VehicleSpacing  float64 `yaml:"vehicle_spacing"`
	VehicleAltitude float64 `yaml:"vehicle_altitude"`
	BorderRadius    float64 `yaml:"border_radius"`
}

// PlayersConfig holds player setup.
type PlayersConfig struct {
	Names        []string `yaml:"names"`
	StartCash    float64  `yaml:"start_cash"`
	AIControlled []string `yaml:"ai_controlled"` // Names driven by the aim solver
}

// AIConfig holds aim solver settings.
type AIConfig struct {
	FuncEvaluations int     `yaml:"func_evaluations"`
	InitialPower    float64 `yaml:"initial_power"`
	Accuracy        float64 `yaml:"accuracy"`     // Prediction accuracy used while solving
	MaxDistance     float64 `yaml:"max_distance"` // Path length budget per candidate shot
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int `yaml:"perf_collector_window"`
	PerfLogInterval     int `yaml:"perf_log_interval"` // Ticks between perf log lines
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickMillis   float64 // Physics.DT in milliseconds
	AIControlled map[string]bool
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Prediction.Accuracy <= 0 || c.Prediction.Accuracy > 1 {
		return fmt.Errorf("prediction.accuracy must be in (0, 1], got %v", c.Prediction.Accuracy)
	}
	if c.AI.Accuracy <= 0 || c.AI.Accuracy > 1 {
		return fmt.Errorf("ai.accuracy must be in (0, 1], got %v", c.AI.Accuracy)
	}
	if len(c.Players.Names) < 2 {
		return fmt.Errorf("players.names needs at least 2 players, got %d", len(c.Players.Names))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickMillis = c.Physics.DT * 1000
	c.Derived.AIControlled = make(map[string]bool, len(c.Players.AIControlled))
	for _, name := range c.Players.AIControlled {
		c.Derived.AIControlled[name] = true
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
