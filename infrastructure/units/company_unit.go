package units

import (
	"fmt"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// CompanyUnit converts the aggregated legal issues of linked companies
// into a capped integrity penalty. Penal issues weigh heaviest, then
// ambiental and laboral; consumidor issues only matter in bulk and
// contribute a single flat penalty once the count passes a threshold.
type CompanyUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config CompanyConfig
}

// CompanyConfig defines the per-occurrence weights, the consumidor
// threshold rule and the category cap.
type CompanyConfig struct {
	// PenalWeight is subtracted per penal issue.
	PenalWeight float64 `yaml:"penal_weight" json:"penal_weight" validate:"min=0,max=100"`

	// AmbientalWeight is subtracted per ambiental issue.
	AmbientalWeight float64 `yaml:"ambiental_weight" json:"ambiental_weight" validate:"min=0,max=100"`

	// LaboralWeight is subtracted per laboral issue.
	LaboralWeight float64 `yaml:"laboral_weight" json:"laboral_weight" validate:"min=0,max=100"`

	// ConsumidorFlat is subtracted once when the consumidor count exceeds
	// ConsumidorThreshold.
	ConsumidorFlat float64 `yaml:"consumidor_flat" json:"consumidor_flat" validate:"min=0,max=100"`

	// ConsumidorThreshold is the count above which the flat penalty fires.
	ConsumidorThreshold int `yaml:"consumidor_threshold" json:"consumidor_threshold" validate:"min=0,max=1000"`

	// Cap bounds the total company penalty.
	Cap float64 `yaml:"cap" json:"cap" validate:"min=0,max=100"`
}

// NewCompanyUnit creates a CompanyUnit with a validated configuration.
func NewCompanyUnit(name string, config CompanyConfig) (*CompanyUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &CompanyUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *CompanyUnit) Name() string { return u.name }

// Compute returns the capped company penalty for the given aggregate.
// A nil aggregate means no linked companies and contributes nothing.
func (u *CompanyUnit) Compute(issues *domain.CompanyIssues) float64 {
	if issues == nil {
		return 0
	}

	penalty := float64(issues.Penal)*u.config.PenalWeight +
		float64(issues.Ambiental)*u.config.AmbientalWeight +
		float64(issues.Laboral)*u.config.LaboralWeight

	if issues.Consumidor > u.config.ConsumidorThreshold {
		penalty += u.config.ConsumidorFlat
	}

	if penalty > u.config.Cap {
		penalty = u.config.Cap
	}
	return penalty
}

// Validate checks if the unit is properly configured.
func (u *CompanyUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultCompanyConfig returns the production defaults: penal x40,
// ambiental x25, laboral x20, consumidor +15 above 5 issues, capped at 60.
func DefaultCompanyConfig() CompanyConfig {
	return CompanyConfig{
		PenalWeight:         40,
		AmbientalWeight:     25,
		LaboralWeight:       20,
		ConsumidorFlat:      15,
		ConsumidorThreshold: 5,
		Cap:                 60,
	}
}
