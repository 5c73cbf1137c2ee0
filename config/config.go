package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root scenario configuration. Every field has an embedded
// default, so the zero config file (or no file at all) is valid.
type Config struct {
	Logging   LoggingConfig  `yaml:"logging"`
	Engine    EngineConfig   `yaml:"engine"`
	RunLog    RunLogConfig   `yaml:"runlog"`
	Training  TrainingConfig `yaml:"training"`
	Scenarios ScenarioConfig `yaml:"scenarios"`
}

// LoggingConfig selects the log level and output encoding.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text or json
}

// EngineConfig bounds the run pipeline.
type EngineConfig struct {
	MaxConcurrentRuns int `yaml:"max_concurrent_runs"` // 0 = unlimited
	EventBufferSize   int `yaml:"event_buffer_size"`
	MaxSteps          int `yaml:"max_steps"` // 0 = unlimited
}

// RunLogConfig selects where run records are persisted.
type RunLogConfig struct {
	// Path is the SQLite database file. Empty keeps records in memory.
	Path string `yaml:"path"`
}

// TrainingConfig holds the tabular learning hyperparameters.
type TrainingConfig struct {
	Alpha     float64 `yaml:"alpha"`     // learning rate
	Gamma     float64 `yaml:"gamma"`     // discount factor
	Epsilon   float64 `yaml:"epsilon"`   // exploration rate
	Episodes  int     `yaml:"episodes"`  // episode trainer iterations
	Algorithm string  `yaml:"algorithm"` // q or sarsa
	Seed      int64   `yaml:"seed"`
}

// ScenarioConfig groups the per-demo tunables.
type ScenarioConfig struct {
	Climate   ClimateConfig   `yaml:"climate"`
	Utility   UtilityConfig   `yaml:"utility"`
	Warehouse WarehouseConfig `yaml:"warehouse"`
}

// ClimateConfig tunes the smart-home climate sub-agent.
type ClimateConfig struct {
	Target    int `yaml:"target"`    // degrees Fahrenheit
	Tolerance int `yaml:"tolerance"` // comfort band half-width
}

// UtilityConfig tunes the utility agent's criterion weights.
type UtilityConfig struct {
	CostWeight float64 `yaml:"cost_weight"`
	TimeWeight float64 `yaml:"time_weight"`
	RiskWeight float64 `yaml:"risk_weight"`
}

// WarehouseConfig tunes the multi-agent warehouse simulation.
type WarehouseConfig struct {
	ChargingStations int `yaml:"charging_stations"`
	Ticks            int `yaml:"ticks"` // simulation loop bound
}

// Default returns the configuration used when no file overrides it. The
// training and scenario values match the canonical demo runs.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Engine: EngineConfig{
			MaxConcurrentRuns: 10,
			EventBufferSize:   100,
			MaxSteps:          1000,
		},
		Training: TrainingConfig{
			Alpha:     0.1,
			Gamma:     0.9,
			Epsilon:   0.2,
			Episodes:  200,
			Algorithm: "q",
			Seed:      1,
		},
		Scenarios: ScenarioConfig{
			Climate: ClimateConfig{
				Target:    72,
				Tolerance: 2,
			},
			Utility: UtilityConfig{
				CostWeight: 0.5,
				TimeWeight: 0.3,
				RiskWeight: 0.2,
			},
			Warehouse: WarehouseConfig{
				ChargingStations: 3,
				Ticks:            6,
			},
		},
	}
}

// Load merges the YAML file at path over the defaults and validates the
// result. An empty path returns the defaults unchanged; a path that does
// not exist is an error, since the caller asked for that specific file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Dump renders the effective configuration as YAML, for the validate
// command to echo back.
func (c Config) Dump() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("config: encode: %w", err)
	}
	return string(data), nil
}

func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Training.Algorithm = strings.ToLower(strings.TrimSpace(c.Training.Algorithm))
	c.RunLog.Path = strings.TrimSpace(c.RunLog.Path)
}

// Validate reports the first invalid field by its YAML path.
func (c Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Engine.MaxConcurrentRuns < 0 {
		return fmt.Errorf("engine.max_concurrent_runs must be >= 0, got %d", c.Engine.MaxConcurrentRuns)
	}
	if c.Engine.EventBufferSize < 1 {
		return fmt.Errorf("engine.event_buffer_size must be >= 1, got %d", c.Engine.EventBufferSize)
	}
	if c.Engine.MaxSteps < 0 {
		return fmt.Errorf("engine.max_steps must be >= 0, got %d", c.Engine.MaxSteps)
	}

	if c.Training.Alpha <= 0 || c.Training.Alpha > 1 {
		return fmt.Errorf("training.alpha must be in (0, 1], got %g", c.Training.Alpha)
	}
	if c.Training.Gamma < 0 || c.Training.Gamma > 1 {
		return fmt.Errorf("training.gamma must be in [0, 1], got %g", c.Training.Gamma)
	}
	if c.Training.Epsilon < 0 || c.Training.Epsilon > 1 {
		return fmt.Errorf("training.epsilon must be in [0, 1], got %g", c.Training.Epsilon)
	}
	if c.Training.Episodes < 1 {
		return fmt.Errorf("training.episodes must be >= 1, got %d", c.Training.Episodes)
	}
	switch c.Training.Algorithm {
	case "q", "sarsa":
	default:
		return fmt.Errorf("training.algorithm must be q or sarsa, got %q", c.Training.Algorithm)
	}

	if c.Scenarios.Climate.Tolerance < 0 {
		return fmt.Errorf("scenarios.climate.tolerance must be >= 0, got %d", c.Scenarios.Climate.Tolerance)
	}
	if w := c.Scenarios.Utility; w.CostWeight < 0 || w.TimeWeight < 0 || w.RiskWeight < 0 {
		return fmt.Errorf("scenarios.utility weights must be >= 0, got cost %g time %g risk %g",
			w.CostWeight, w.TimeWeight, w.RiskWeight)
	}
	if c.Scenarios.Warehouse.ChargingStations < 1 {
		return fmt.Errorf("scenarios.warehouse.charging_stations must be >= 1, got %d", c.Scenarios.Warehouse.ChargingStations)
	}
	if c.Scenarios.Warehouse.Ticks < 1 {
		return fmt.Errorf("scenarios.warehouse.ticks must be >= 1, got %d", c.Scenarios.Warehouse.Ticks)
	}
	return nil
}
