package units

import "fmt"

// ResignationUnit converts the documented party-resignation count into an
// integrity penalty that grows monotonically with the count up to a cap.
type ResignationUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config ResignationConfig
}

// ResignationConfig defines the per-resignation weight and the category cap.
type ResignationConfig struct {
	// PerResignation is subtracted for each documented resignation.
	PerResignation float64 `yaml:"per_resignation" json:"per_resignation" validate:"min=0,max=100"`

	// Cap bounds the total resignation penalty.
	Cap float64 `yaml:"cap" json:"cap" validate:"min=0,max=100"`
}

// NewResignationUnit creates a ResignationUnit with a validated
// configuration.
func NewResignationUnit(name string, config ResignationConfig) (*ResignationUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &ResignationUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *ResignationUnit) Name() string { return u.name }

// Compute returns the resignation penalty for the given count. Negative
// counts are treated as zero.
func (u *ResignationUnit) Compute(resignations int) float64 {
	if resignations <= 0 {
		return 0
	}
	penalty := float64(resignations) * u.config.PerResignation
	if penalty > u.config.Cap {
		penalty = u.config.Cap
	}
	return penalty
}

// Validate checks if the unit is properly configured.
func (u *ResignationUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultResignationConfig returns the production defaults: 5 points per
// resignation, capped at 25.
func DefaultResignationConfig() ResignationConfig {
	return ResignationConfig{
		PerResignation: 5,
		Cap:            25,
	}
}
