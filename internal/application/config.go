// Package application orchestrates batch scoring: configuration loading,
// full and incremental recomputation, and sibling-record reconciliation.
// The engine holds no global state; every dependency is injected.
package application

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/votolimpio/scoring-engine/infrastructure/units"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// EngineConfig holds the batch-driver settings.
type EngineConfig struct {
	// Workers bounds the worker-pool parallelism across candidates.
	// Candidates are independent; within one candidate the
	// read-normalize-compute-write sequence stays serialized.
	Workers int `yaml:"workers" validate:"min=1,max=256"`

	// ReferenceYear closes open experience intervals. Zero means the
	// current wall-clock year at batch start.
	ReferenceYear int `yaml:"reference_year" validate:"eq=0|min=1990,max=2100"`

	// MatchThreshold is the minimum name similarity (0-1) for the sibling
	// matcher to accept a fuzzy match. Anything below, or more than one
	// candidate group above it, is ambiguous and goes to manual review.
	MatchThreshold float64 `yaml:"match_threshold" validate:"min=0,max=1"`
}

// ScoringConfig is the complete engine configuration: driver settings plus
// every unit's thresholds, weights and caps. Historical scripts disagreed
// on the exact constants, so all of them live here rather than in code.
type ScoringConfig struct {
	// Version tracks the configuration schema for reproducibility audits.
	Version string `yaml:"version" validate:"required"`

	// Engine holds the batch-driver settings.
	Engine EngineConfig `yaml:"engine" validate:"required"`

	// Units holds the per-category calculator configurations.
	Units units.SuiteConfig `yaml:"units" validate:"required"`
}

// DefaultScoringConfig returns the full set of production defaults.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Version: "1.0.0",
		Engine: EngineConfig{
			Workers:        8,
			ReferenceYear:  0,
			MatchThreshold: 0.90,
		},
		Units: units.DefaultSuiteConfig(),
	}
}

// LoadScoringConfig reads a YAML configuration file over the defaults.
// Decoding is strict so a typo in a threshold name fails loudly instead of
// silently keeping the default, and the merged result is validated.
func LoadScoringConfig(path string) (ScoringConfig, error) {
	config := DefaultScoringConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return ScoringConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := unmarshalStrict(data, &config); err != nil {
		return ScoringConfig{}, fmt.Errorf("decode config %s (check for typos): %w", path, err)
	}

	if err := ValidateScoringConfig(config); err != nil {
		return ScoringConfig{}, err
	}
	return config, nil
}

// unmarshalStrict decodes YAML with unknown fields rejected. An empty
// document keeps the defaults.
func unmarshalStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ValidateScoringConfig checks the driver settings and builds a throwaway
// suite so every unit configuration is validated the same way it will be
// at engine construction.
func ValidateScoringConfig(config ScoringConfig) error {
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if _, err := units.NewSuite(config.Units); err != nil {
		return fmt.Errorf("unit configuration invalid: %w", err)
	}
	return nil
}
