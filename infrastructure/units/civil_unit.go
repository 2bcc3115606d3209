package units

import (
	"fmt"
	"sort"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// CivilUnit converts civil-sentence records into itemized integrity
// penalties. Violencia familiar and alimentos sentences are red severity
// and weigh heavier; laboral, contractual and any other subtype are amber.
// The unit returns one item per subtype so the audit breakdown can show
// where each point went.
type CivilUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config CivilConfig
}

// CivilConfig defines the per-entry penalty weights by severity.
type CivilConfig struct {
	// RedPenalty is subtracted per red-severity entry.
	RedPenalty float64 `yaml:"red_penalty" json:"red_penalty" validate:"min=0,max=100"`

	// AmberPenalty is subtracted per amber-severity entry.
	AmberPenalty float64 `yaml:"amber_penalty" json:"amber_penalty" validate:"min=0,max=100"`
}

// NewCivilUnit creates a CivilUnit with a validated configuration.
func NewCivilUnit(name string, config CivilConfig) (*CivilUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &CivilUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *CivilUnit) Name() string { return u.name }

// severityOf classifies a canonical civil subtype.
func severityOf(civilType string) Severity {
	switch civilType {
	case domain.CivilViolenciaFamiliar, domain.CivilAlimentos:
		return SeverityRed
	default:
		return SeverityAmber
	}
}

// Compute returns the itemized civil penalties, one entry per subtype,
// sorted by subtype for deterministic breakdown output, plus the total.
func (u *CivilUnit) Compute(sentences []domain.CivilSentence) ([]domain.CivilPenaltyItem, float64) {
	if len(sentences) == 0 {
		return nil, 0
	}

	perType := make(map[string]float64)
	for _, s := range sentences {
		weight := u.config.AmberPenalty
		if severityOf(s.Type) == SeverityRed {
			weight = u.config.RedPenalty
		}
		perType[s.Type] += weight
	}

	items := make([]domain.CivilPenaltyItem, 0, len(perType))
	var total float64
	for typ, penalty := range perType {
		items = append(items, domain.CivilPenaltyItem{Type: typ, Penalty: penalty})
		total += penalty
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Type < items[j].Type })

	return items, total
}

// Validate checks if the unit is properly configured.
func (u *CivilUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultCivilConfig returns the production defaults: 15 points per red
// entry, 5 per amber entry.
func DefaultCivilConfig() CivilConfig {
	return CivilConfig{
		RedPenalty:   15,
		AmberPenalty: 5,
	}
}
