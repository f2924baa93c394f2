// Package config loads and validates the application configuration: the
// evolutionary parameters plus logging and archive settings, sourced from
// a YAML file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ktorvald/evoagent/pkg/errors"
	"github.com/ktorvald/evoagent/pkg/evolution"
	"github.com/ktorvald/evoagent/pkg/logging"
)

// Config represents the complete application configuration.
type Config struct {
	// Evolution engine parameters
	Evolution evolution.Config `yaml:"evolution"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging,omitempty"`

	// Generation-history archive configuration
	History HistoryConfig `yaml:"history,omitempty"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR, FATAL.
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=DEBUG INFO WARN ERROR FATAL"`

	// UseColors enables ANSI colors on console output.
	UseColors bool `yaml:"use_colors,omitempty"`
}

// HistoryConfig holds the statistics archive settings.
type HistoryConfig struct {
	// Path of the SQLite archive; empty disables archival.
	Path string `yaml:"path,omitempty"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Evolution: evolution.DefaultConfig(),
		Logging: LoggingConfig{
			Level:     "INFO",
			UseColors: true,
		},
	}
}

// Load reads a YAML configuration file on top of the defaults and
// validates the result, failing fast on any invalid value.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.InvalidConfig, "failed to read config file"),
			errors.Fields{"path": path})
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.InvalidConfig, "failed to parse config file"),
			errors.Fields{"path": path})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the full configuration.
func (c *Config) Validate() error {
	if err := c.Evolution.Validate(); err != nil {
		return err
	}
	return validateLogging(&c.Logging)
}

// Severity resolves the configured logging level.
func (c *LoggingConfig) Severity() logging.Severity {
	return logging.ParseSeverity(c.Level)
}
