package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
)

// Config represents the engine configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Kernel  KernelConfig  `yaml:"kernel"`
	Build   BuildConfig   `yaml:"build"`
	Metrics MetricsConfig `yaml:"metrics"`
	Journal JournalConfig `yaml:"journal"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// KernelConfig configures the reference geometry kernel.
type KernelConfig struct {
	Tolerance float64 `yaml:"tolerance"` // Coincidence tolerance for points and bounds
}

// BuildConfig configures builder sessions.
type BuildConfig struct {
	DefaultWorkplane Workplane `yaml:"default_workplane"` // Frame used when no workplane scope is open
}

// MetricsConfig configures the Prometheus recorder.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// JournalConfig configures the construction journal.
type JournalConfig struct {
	Enabled bool          `yaml:"enabled"`
	Driver  JournalDriver `yaml:"driver"` // memory|sqlite
	Path    string        `yaml:"path"`   // SQLite database path, ":memory:" allowed
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads a configuration file. Environment variables from .env/.env.local
// are loaded first and ${VAR} references in the file are expanded.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		// Missing .env files are normal.
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	return Parse(data)
}

// Parse decodes YAML configuration, then normalizes, defaults and validates it.
// Normalization warnings are printed to stderr.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			Build()
	}

	res := Normalize(&cfg)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "config normalization: %s\n", w)
	}
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
