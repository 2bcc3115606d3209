package units

import (
	"fmt"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// PenalUnit converts criminal-sentence records into an integrity penalty.
// Settled sentences (firme, cumplida) contribute a large fixed penalty
// each; in-process or appealed sentences a smaller one. The sum is
// deliberately uncapped here: the integrity floor at zero is applied by
// the aggregation, so one more settled sentence can never raise the score.
type PenalUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config PenalConfig
}

// PenalConfig defines the per-sentence penalty magnitudes.
type PenalConfig struct {
	// SettledPenalty is subtracted per firme or cumplida sentence.
	SettledPenalty float64 `yaml:"settled_penalty" json:"settled_penalty" validate:"min=0,max=100"`

	// PendingPenalty is subtracted per proceso or apelacion sentence.
	PendingPenalty float64 `yaml:"pending_penalty" json:"pending_penalty" validate:"min=0,max=100"`
}

// NewPenalUnit creates a PenalUnit with a validated configuration.
func NewPenalUnit(name string, config PenalConfig) (*PenalUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &PenalUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *PenalUnit) Name() string { return u.name }

// Compute returns the total penal penalty for the given sentences.
func (u *PenalUnit) Compute(sentences []domain.PenalSentence) float64 {
	var penalty float64
	for _, s := range sentences {
		if s.Status.Settled() {
			penalty += u.config.SettledPenalty
		} else {
			penalty += u.config.PendingPenalty
		}
	}
	return penalty
}

// Validate checks if the unit is properly configured.
func (u *PenalUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultPenalConfig returns the production defaults: 30 points per
// settled sentence, 10 per pending one.
func DefaultPenalConfig() PenalConfig {
	return PenalConfig{
		SettledPenalty: 30,
		PendingPenalty: 10,
	}
}
