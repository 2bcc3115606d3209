package units

import (
	"fmt"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// ReinfoUnit screens REINFO mining-registry links for conflicts of
// interest. A candidate with any Vigente or Suspendido right is a red
// finding; one whose rights are all Excluido is amber. The magnitude
// scales with the number of distinct rights, deduplicated by code.
type ReinfoUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config ReinfoConfig
}

// ReinfoConfig defines the base penalties, per-extra-right increments and
// caps for both severities.
type ReinfoConfig struct {
	// RedBase is subtracted when at least one right is Vigente or
	// Suspendido.
	RedBase float64 `yaml:"red_base" json:"red_base" validate:"min=0,max=100"`

	// RedPerExtraRight is added per distinct right beyond the first on a
	// red finding.
	RedPerExtraRight float64 `yaml:"red_per_extra_right" json:"red_per_extra_right" validate:"min=0,max=100"`

	// RedCap bounds the red penalty.
	RedCap float64 `yaml:"red_cap" json:"red_cap" validate:"min=0,max=100"`

	// AmberBase is subtracted when every right is Excluido.
	AmberBase float64 `yaml:"amber_base" json:"amber_base" validate:"min=0,max=100"`

	// AmberPerExtraRight is added per distinct right beyond the first on
	// an amber finding.
	AmberPerExtraRight float64 `yaml:"amber_per_extra_right" json:"amber_per_extra_right" validate:"min=0,max=100"`

	// AmberCap bounds the amber penalty.
	AmberCap float64 `yaml:"amber_cap" json:"amber_cap" validate:"min=0,max=100"`
}

// NewReinfoUnit creates a ReinfoUnit with a validated configuration.
func NewReinfoUnit(name string, config ReinfoConfig) (*ReinfoUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &ReinfoUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *ReinfoUnit) Name() string { return u.name }

// Compute returns the REINFO penalty and the screening severity for the
// given rights.
func (u *ReinfoUnit) Compute(rights []domain.MiningRight) (float64, Severity) {
	if len(rights) == 0 {
		return 0, SeverityNone
	}

	// Distinct rights by registry code; entries without a code are counted
	// individually since they cannot be proven duplicates.
	seen := make(map[string]struct{}, len(rights))
	distinct := 0
	red := false
	for _, r := range rights {
		if r.Code != "" {
			if _, dup := seen[r.Code]; dup {
				continue
			}
			seen[r.Code] = struct{}{}
		}
		distinct++
		if r.Status == "Vigente" || r.Status == "Suspendido" {
			red = true
		}
	}

	extras := float64(distinct - 1)
	if red {
		penalty := u.config.RedBase + extras*u.config.RedPerExtraRight
		if penalty > u.config.RedCap {
			penalty = u.config.RedCap
		}
		return penalty, SeverityRed
	}

	penalty := u.config.AmberBase + extras*u.config.AmberPerExtraRight
	if penalty > u.config.AmberCap {
		penalty = u.config.AmberCap
	}
	return penalty, SeverityAmber
}

// Validate checks if the unit is properly configured.
func (u *ReinfoUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultReinfoConfig returns the production defaults: red 20 + 5 per
// extra right capped at 40, amber 8 + 2 per extra right capped at 16.
func DefaultReinfoConfig() ReinfoConfig {
	return ReinfoConfig{
		RedBase:            20,
		RedPerExtraRight:   5,
		RedCap:             40,
		AmberBase:          8,
		AmberPerExtraRight: 2,
		AmberCap:           16,
	}
}
