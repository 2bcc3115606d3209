package units

import (
	"fmt"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// VotingUnit converts a congressional voting summary into an integrity
// penalty and a separate integrity bonus. Votes in favor of pro-crime or
// anti-democratic bills are penalized; votes against pro-crime bills earn
// a capped bonus. The two results stay distinct signed contributions and
// are never merged into one number.
type VotingUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config VotingConfig
}

// VotingConfig defines the per-vote weights and the bonus cap.
type VotingConfig struct {
	// PerProCrimeFavor is subtracted per vote in favor of a pro-crime bill.
	PerProCrimeFavor float64 `yaml:"per_pro_crime_favor" json:"per_pro_crime_favor" validate:"min=0,max=100"`

	// PerAntiDemocraticFavor is subtracted per vote in favor of an
	// anti-democratic bill.
	PerAntiDemocraticFavor float64 `yaml:"per_anti_democratic_favor" json:"per_anti_democratic_favor" validate:"min=0,max=100"`

	// PerProCrimeAgainst is added per vote against a pro-crime bill.
	PerProCrimeAgainst float64 `yaml:"per_pro_crime_against" json:"per_pro_crime_against" validate:"min=0,max=100"`

	// BonusCap bounds the total voting bonus.
	BonusCap float64 `yaml:"bonus_cap" json:"bonus_cap" validate:"min=0,max=100"`
}

// NewVotingUnit creates a VotingUnit with a validated configuration.
func NewVotingUnit(name string, config VotingConfig) (*VotingUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &VotingUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *VotingUnit) Name() string { return u.name }

// Compute returns the voting penalty and the voting bonus. A nil summary
// means the candidate never served in congress and contributes nothing.
func (u *VotingUnit) Compute(summary *domain.VotingSummary) (penalty, bonus float64) {
	if summary == nil {
		return 0, 0
	}

	penalty = float64(summary.ProCrimeVotesInFavor)*u.config.PerProCrimeFavor +
		float64(summary.AntiDemocraticVotesInFavor)*u.config.PerAntiDemocraticFavor

	bonus = float64(summary.ProCrimeVotesAgainst) * u.config.PerProCrimeAgainst
	if bonus > u.config.BonusCap {
		bonus = u.config.BonusCap
	}

	return penalty, bonus
}

// Validate checks if the unit is properly configured.
func (u *VotingUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultVotingConfig returns the production defaults: 8 points per
// harmful vote in favor, 2 points of bonus per vote against a pro-crime
// bill capped at 10.
func DefaultVotingConfig() VotingConfig {
	return VotingConfig{
		PerProCrimeFavor:       8,
		PerAntiDemocraticFavor: 8,
		PerProCrimeAgainst:     2,
		BonusCap:               10,
	}
}
