// Package config loads coverprobe settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Adapter names accepted in Configuration.Adapters.
const (
	AdapterBranch  = "branch"
	AdapterLine    = "line"
	AdapterSeeding = "seeding"
)

// Errors returned by Validate.
var (
	ErrUnknownAdapter     = errors.New("unknown adapter")
	ErrNoAdapters         = errors.New("no adapters configured")
	ErrInvalidProbability = errors.New("seeding probability must be within [0, 1]")
	ErrInvalidTimeout     = errors.New("timeout must be positive")
	ErrInvalidLength      = errors.New("max constant length must be positive")
)

// Configuration holds every tunable of an instrumentation run.
type Configuration struct {
	Adapters           []string      `yaml:"adapters"`
	Timeout            time.Duration `yaml:"timeout"`
	SeedingProbability float64       `yaml:"seeding_probability"`
	MaxConstantLength  int           `yaml:"max_constant_length"`
	Seed               uint64        `yaml:"seed"`
	LogLevel           string        `yaml:"log_level"`
	ReportsDir         string        `yaml:"reports_dir"`
}

// Default returns the built-in configuration.
func Default() Configuration {
	return Configuration{
		Adapters:           []string{AdapterBranch, AdapterLine, AdapterSeeding},
		Timeout:            2 * time.Second,
		SeedingProbability: 1.0,
		MaxConstantLength:  30,
		Seed:               42,
		LogLevel:           zerolog.LevelWarnValue,
		ReportsDir:         ".coverprobe-reports",
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Configuration, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Configuration{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks ranges and adapter names.
func (c Configuration) Validate() error {
	if len(c.Adapters) == 0 {
		return ErrNoAdapters
	}

	for _, name := range c.Adapters {
		if !slices.Contains([]string{AdapterBranch, AdapterLine, AdapterSeeding}, name) {
			return fmt.Errorf("%q: %w", name, ErrUnknownAdapter)
		}
	}

	if c.SeedingProbability < 0 || c.SeedingProbability > 1 {
		return ErrInvalidProbability
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxConstantLength <= 0 {
		return ErrInvalidLength
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	return nil
}

// Level returns the configured log level, defaulting to warn.
func (c Configuration) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.WarnLevel
	}

	return lvl
}
