package units

import (
	"fmt"
	"math"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// CompositeUnit combines the category scores into the three fixed
// weighted rankings. Confidence never participates; it is an orthogonal
// filter dimension.
type CompositeUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config CompositeConfig
}

// CompositeConfig holds the three coefficient sets. Each set must sum to
// exactly 1.0.
type CompositeConfig struct {
	Balanced       domain.CompositeWeights `yaml:"balanced" json:"balanced"`
	Merit          domain.CompositeWeights `yaml:"merit" json:"merit"`
	IntegrityFirst domain.CompositeWeights `yaml:"integrity_first" json:"integrity_first"`
}

// NewCompositeUnit creates a CompositeUnit with a validated configuration.
func NewCompositeUnit(name string, config CompositeConfig) (*CompositeUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	unit := &CompositeUnit{name: name, config: config}
	if err := unit.Validate(); err != nil {
		return nil, err
	}
	return unit, nil
}

// Name returns the unique identifier for this unit instance.
func (u *CompositeUnit) Name() string { return u.name }

// Compute returns the three composites, each rounded to one decimal.
func (u *CompositeUnit) Compute(competence, integrity, transparency float64) (balanced, merit, integrityFirst float64) {
	balanced = u.config.Balanced.Apply(competence, integrity, transparency)
	merit = u.config.Merit.Apply(competence, integrity, transparency)
	integrityFirst = u.config.IntegrityFirst.Apply(competence, integrity, transparency)
	return balanced, merit, integrityFirst
}

// Validate checks coefficient ranges and that each set sums to 1.0.
func (u *CompositeUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	for label, w := range map[string]domain.CompositeWeights{
		"balanced":        u.config.Balanced,
		"merit":           u.config.Merit,
		"integrity_first": u.config.IntegrityFirst,
	} {
		if math.Abs(w.Sum()-1.0) > 1e-9 {
			return fmt.Errorf("composite %s coefficients sum to %.4f, want 1.0", label, w.Sum())
		}
	}
	return nil
}

// DefaultCompositeConfig returns the fixed production combinations:
// balanced .45/.45/.10, merit .60/.30/.10, integrity-first .30/.60/.10.
func DefaultCompositeConfig() CompositeConfig {
	return CompositeConfig{
		Balanced:       domain.CompositeWeights{Competence: 0.45, Integrity: 0.45, Transparency: 0.10},
		Merit:          domain.CompositeWeights{Competence: 0.60, Integrity: 0.30, Transparency: 0.10},
		IntegrityFirst: domain.CompositeWeights{Competence: 0.30, Integrity: 0.60, Transparency: 0.10},
	}
}
