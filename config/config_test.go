package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if cfg.Training.Alpha != 0.1 || cfg.Training.Gamma != 0.9 || cfg.Training.Epsilon != 0.2 {
		t.Fatalf("unexpected training defaults: %+v", cfg.Training)
	}
	if cfg.Scenarios.Climate.Target != 72 || cfg.Scenarios.Climate.Tolerance != 2 {
		t.Fatalf("unexpected climate defaults: %+v", cfg.Scenarios.Climate)
	}
	if cfg.Scenarios.Warehouse.ChargingStations != 3 {
		t.Fatalf("unexpected warehouse defaults: %+v", cfg.Scenarios.Warehouse)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
training:
  epsilon: 0.05
  episodes: 500
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected overridden level debug, got %q", cfg.Logging.Level)
	}
	if cfg.Training.Epsilon != 0.05 || cfg.Training.Episodes != 500 {
		t.Fatalf("expected overridden training values, got %+v", cfg.Training)
	}
	// untouched keys keep their defaults
	if cfg.Logging.Format != "text" {
		t.Fatalf("expected default format text, got %q", cfg.Logging.Format)
	}
	if cfg.Training.Alpha != 0.1 {
		t.Fatalf("expected default alpha 0.1, got %g", cfg.Training.Alpha)
	}
	if cfg.Scenarios.Utility.CostWeight != 0.5 {
		t.Fatalf("expected default cost weight 0.5, got %g", cfg.Scenarios.Utility.CostWeight)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "logging: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadNormalizesStrings(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: "  WARN "
training:
  algorithm: SARSA
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected normalized level warn, got %q", cfg.Logging.Level)
	}
	if cfg.Training.Algorithm != "sarsa" {
		t.Fatalf("expected normalized algorithm sarsa, got %q", cfg.Training.Algorithm)
	}
}

func TestValidateReportsFieldPaths(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantSub string
	}{
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"negative runs", func(c *Config) { c.Engine.MaxConcurrentRuns = -1 }, "engine.max_concurrent_runs"},
		{"zero buffer", func(c *Config) { c.Engine.EventBufferSize = 0 }, "engine.event_buffer_size"},
		{"alpha too big", func(c *Config) { c.Training.Alpha = 1.5 }, "training.alpha"},
		{"alpha zero", func(c *Config) { c.Training.Alpha = 0 }, "training.alpha"},
		{"gamma negative", func(c *Config) { c.Training.Gamma = -0.1 }, "training.gamma"},
		{"epsilon too big", func(c *Config) { c.Training.Epsilon = 2 }, "training.epsilon"},
		{"no episodes", func(c *Config) { c.Training.Episodes = 0 }, "training.episodes"},
		{"bad algorithm", func(c *Config) { c.Training.Algorithm = "monte-carlo" }, "training.algorithm"},
		{"negative tolerance", func(c *Config) { c.Scenarios.Climate.Tolerance = -1 }, "scenarios.climate.tolerance"},
		{"negative weight", func(c *Config) { c.Scenarios.Utility.RiskWeight = -0.2 }, "scenarios.utility"},
		{"no stations", func(c *Config) { c.Scenarios.Warehouse.ChargingStations = 0 }, "scenarios.warehouse.charging_stations"},
		{"no ticks", func(c *Config) { c.Scenarios.Warehouse.Ticks = 0 }, "scenarios.warehouse.ticks"},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.wantSub) {
			t.Fatalf("%s: error %q does not name %q", tc.name, err, tc.wantSub)
		}
	}
}

func TestDumpRoundTrips(t *testing.T) {
	out, err := Default().Dump()
	if err != nil {
		t.Fatalf("Dump returned error: %v", err)
	}
	path := writeConfig(t, out)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of dumped config returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("dumped config did not round-trip: %+v", cfg)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agentica.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
