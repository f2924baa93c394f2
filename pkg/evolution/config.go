package evolution

import (
	"github.com/go-playground/validator/v10"

	"github.com/ktorvald/evoagent/pkg/errors"
)

// FitnessFunction selects the scoring objective used to rank genomes.
type FitnessFunction string

const (
	FitnessBalanced          FitnessFunction = "balanced"
	FitnessSuccessFocused    FitnessFunction = "success-focused"
	FitnessInnovationFocused FitnessFunction = "innovation-focused"
)

// Config contains the evolutionary parameters for the engine.
//
// Invalid configurations are rejected at construction time rather than
// silently clamped, so a misconfigured caller fails immediately.
type Config struct {
	// Evolutionary parameters
	PopulationSize int     `json:"population_size" yaml:"population_size" validate:"min=1"`
	MutationRate   float64 `json:"mutation_rate" yaml:"mutation_rate" validate:"gte=0,lte=1"`
	CrossoverRate  float64 `json:"crossover_rate" yaml:"crossover_rate" validate:"gte=0,lte=1"`
	ElitismCount   int     `json:"elitism_count" yaml:"elitism_count" validate:"gte=0"`

	// Objective selection
	FitnessFunction FitnessFunction `json:"fitness_function" yaml:"fitness_function" validate:"omitempty,oneof=balanced success-focused innovation-focused"`

	// Performance parameters
	Concurrency int `json:"concurrency" yaml:"concurrency" validate:"gte=0"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		PopulationSize:  20,
		MutationRate:    0.1,
		CrossoverRate:   0.7,
		ElitismCount:    2,
		FitnessFunction: FitnessBalanced,
		Concurrency:     4,
	}
}

var configValidator = validator.New()

// Validate checks the configuration, including the cross-field rule that
// elitism cannot exceed the population size.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return errors.Wrap(err, errors.InvalidConfig, "invalid evolution config")
	}
	if c.ElitismCount > c.PopulationSize {
		return errors.WithFields(
			errors.New(errors.InvalidConfig, "elitism count exceeds population size"),
			errors.Fields{
				"elitism_count":   c.ElitismCount,
				"population_size": c.PopulationSize,
			})
	}
	return nil
}

// withDefaults fills unset optional fields from DefaultConfig.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.FitnessFunction == "" {
		c.FitnessFunction = defaults.FitnessFunction
	}
	if c.Concurrency <= 0 {
		c.Concurrency = defaults.Concurrency
	}
	return c
}
