// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by Load when a value is out of range.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Track      TrackConfig      `yaml:"track"`
	Population PopulationConfig `yaml:"population"`
	Agent      AgentConfig      `yaml:"agent"`
	Sensors    SensorsConfig    `yaml:"sensors"`
	Neural     NeuralConfig     `yaml:"neural"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Obstacles  ObstaclesConfig  `yaml:"obstacles"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	HallOfFame HallOfFameConfig `yaml:"hall_of_fame"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	PanelW    int `yaml:"panel_width"` // Side panel right of the track view, added to Width
}

// WorldConfig holds the dimensions the track is laid out in.
type WorldConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// TrackConfig holds track generator parameters.
type TrackConfig struct {
	ControlPoints int     `yaml:"control_points"`
	RadiusFactor  float64 `yaml:"radius_factor"` // Base radius as a fraction of min(world w, h)
	Jitter        float64 `yaml:"jitter"`        // Radius varies by up to ±jitter/2 of base
	Width         float64 `yaml:"width"`
}

// PopulationConfig holds generation parameters.
type PopulationConfig struct {
	Size     int `yaml:"size"`
	Lifespan int `yaml:"lifespan"` // Survival clock in ticks
}

// AgentConfig holds car body and kinematics.
type AgentConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Acceleration float64 `yaml:"acceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Friction     float64 `yaml:"friction"`
	TurnRate     float64 `yaml:"turn_rate"`
}

// SensorsConfig holds ray sensor parameters.
type SensorsConfig struct {
	RayCount        int     `yaml:"ray_count"`
	RayLength       float64 `yaml:"ray_length"`
	RaySpreadDegree float64 `yaml:"ray_spread_degrees"`
}

// NeuralConfig holds network topology.
type NeuralConfig struct {
	HiddenLayers []int `yaml:"hidden_layers"`
	NumOutputs   int   `yaml:"num_outputs"`
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Amount float64 `yaml:"amount"` // Lerp factor toward a random weight
}

// ObstaclesConfig holds obstacle field parameters.
type ObstaclesConfig struct {
	Count   int     `yaml:"count"`
	Max     int     `yaml:"max"` // Upper bound for the UI slider
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Dynamic bool    `yaml:"dynamic"`
	Drift   float64 `yaml:"drift"`
}

// SimulationConfig holds loop parameters.
type SimulationConfig struct {
	StepsPerFrame int    `yaml:"steps_per_frame"` // Initial speed multiplier
	MaxSpeed      int    `yaml:"max_speed"`       // Speed slider upper bound
	BrainFile     string `yaml:"brain_file"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	GenerationsFile     string `yaml:"generations_file"`
	PerfFile            string `yaml:"perf_file"`
	PerfCollectorWindow int    `yaml:"perf_collector_window"` // Ticks averaged per perf sample
}

// HallOfFameConfig holds hall of fame settings.
type HallOfFameConfig struct {
	Enabled    bool `yaml:"enabled"`
	Size       int  `yaml:"size"`
	MinFitness int  `yaml:"min_fitness"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW    float64 // Effective world width
	WorldH    float64 // Effective world height
	RaySpread float64 // Sensors.RaySpreadDegree in radians
	Topology  []int   // Ray count, hidden layers, outputs
}

var global *Config

// Init loads path (or the embedded defaults when path is empty) and makes it
// the process-wide config returned by Cfg.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit calls Init and panics if it fails. Meant for tests and main.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Cfg returns the config set by Init.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load decodes the embedded defaults and then, if path is set, the file at
// path on top of them, so a run file only needs the keys it changes.
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
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// validate rejects values the track generator or the population cannot
// work with.
func (c *Config) validate() error {
	switch {
	case c.Population.Size < 1:
		return fmt.Errorf("%w: population.size must be at least 1", ErrInvalid)
	case c.Population.Lifespan < 1:
		return fmt.Errorf("%w: population.lifespan must be at least 1", ErrInvalid)
	case c.Track.ControlPoints < 3:
		return fmt.Errorf("%w: track.control_points must be at least 3", ErrInvalid)
	case c.Track.Width <= 0:
		return fmt.Errorf("%w: track.width must be positive", ErrInvalid)
	case c.Sensors.RayCount < 1:
		return fmt.Errorf("%w: sensors.ray_count must be at least 1", ErrInvalid)
	case c.Neural.NumOutputs < 1:
		return fmt.Errorf("%w: neural.num_outputs must be at least 1", ErrInvalid)
	case c.Mutation.Amount < 0 || c.Mutation.Amount > 1:
		return fmt.Errorf("%w: mutation.amount must be in [0, 1]", ErrInvalid)
	case c.Obstacles.Count < 0:
		return fmt.Errorf("%w: obstacles.count must not be negative", ErrInvalid)
	}
	for _, n := range c.Neural.HiddenLayers {
		if n < 1 {
			return fmt.Errorf("%w: neural.hidden_layers entries must be at least 1", ErrInvalid)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = float64(worldW)
	c.Derived.WorldH = float64(worldH)

	c.Derived.RaySpread = c.Sensors.RaySpreadDegree * math.Pi / 180

	c.Derived.Topology = make([]int, 0, len(c.Neural.HiddenLayers)+2)
	c.Derived.Topology = append(c.Derived.Topology, c.Sensors.RayCount)
	c.Derived.Topology = append(c.Derived.Topology, c.Neural.HiddenLayers...)
	c.Derived.Topology = append(c.Derived.Topology, c.Neural.NumOutputs)
}

// RecomputeDerived refreshes Derived after fields were changed in code.
func (c *Config) RecomputeDerived() {
	c.computeDerived()
}

// Clone returns a deep copy that can be changed without affecting c.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Neural.HiddenLayers = append([]int(nil), c.Neural.HiddenLayers...)
	cp.Derived.Topology = append([]int(nil), c.Derived.Topology...)
	return &cp
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
