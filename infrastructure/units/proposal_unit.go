package units

import (
	"fmt"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// ProposalUnit aggregates the four AI-evaluated proposal dimensions into
// the overall quality figure. The result is informational only: it is
// reported next to the scores but never feeds integrity or any composite.
type ProposalUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config ProposalConfig
}

// ProposalConfig bounds the dimension scale.
type ProposalConfig struct {
	// ScaleMax is the upper bound of each dimension, 10 for the standard
	// 0-10 AI rubric.
	ScaleMax float64 `yaml:"scale_max" json:"scale_max" validate:"gt=0,max=100"`
}

// NewProposalUnit creates a ProposalUnit with a validated configuration.
func NewProposalUnit(name string, config ProposalConfig) (*ProposalUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &ProposalUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *ProposalUnit) Name() string { return u.name }

// Compute returns the overall proposal quality on the configured scale.
// A nil evaluation means no plan was filed and yields zero.
func (u *ProposalUnit) Compute(eval *domain.ProposalEvaluation) float64 {
	if eval == nil {
		return 0
	}
	quality := eval.OverallQuality()
	if quality < 0 {
		return 0
	}
	if quality > u.config.ScaleMax {
		return u.config.ScaleMax
	}
	return quality
}

// Validate checks if the unit is properly configured.
func (u *ProposalUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultProposalConfig returns the standard 0-10 rubric bound.
func DefaultProposalConfig() ProposalConfig {
	return ProposalConfig{ScaleMax: 10}
}
