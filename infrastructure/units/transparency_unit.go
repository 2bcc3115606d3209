package units

import (
	"fmt"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// TransparencyUnit scores the presence and completeness of disclosure
// documents: declared assets, income, hoja de vida, CV and photo. Each
// present component contributes equally; five components at the default
// weight normalize to [0,100].
type TransparencyUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config TransparencyConfig
}

// TransparencyConfig defines the per-component weight.
type TransparencyConfig struct {
	// PerComponent is earned per present disclosure component.
	PerComponent float64 `yaml:"per_component" json:"per_component" validate:"gt=0,max=100"`
}

// NewTransparencyUnit creates a TransparencyUnit with a validated
// configuration.
func NewTransparencyUnit(name string, config TransparencyConfig) (*TransparencyUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &TransparencyUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *TransparencyUnit) Name() string { return u.name }

// Compute returns the transparency score, clamped to [0,100].
func (u *TransparencyUnit) Compute(docs domain.TransparencyDocs) float64 {
	var present int
	for _, ok := range []bool{docs.AssetsDeclaration, docs.IncomeDeclaration, docs.HojaDeVida, docs.CV, docs.Photo} {
		if ok {
			present++
		}
	}
	return domain.Clamp0100(float64(present) * u.config.PerComponent)
}

// Validate checks if the unit is properly configured.
func (u *TransparencyUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultTransparencyConfig returns the production default of 20 points
// per component.
func DefaultTransparencyConfig() TransparencyConfig {
	return TransparencyConfig{PerComponent: 20}
}
