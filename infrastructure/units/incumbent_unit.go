package units

import (
	"fmt"
	"math"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// IncumbentUnit converts incumbent-government performance scalars into a
// capped integrity penalty. Candidates who never held office contribute
// nothing. Budget-execution shortfall below the threshold is penalized per
// 5-point band, each adverse Contraloría report carries a fixed weight,
// and a management score below 50 is penalized per 10-point band.
type IncumbentUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config IncumbentConfig
}

// IncumbentConfig defines the thresholds, band sizes and weights.
// Historical scripts disagreed on exact rounding, so every constant is
// externalized here rather than hardcoded.
type IncumbentConfig struct {
	// BudgetThresholdPct is the budget-execution line below which the
	// shortfall penalty starts.
	BudgetThresholdPct float64 `yaml:"budget_threshold_pct" json:"budget_threshold_pct" validate:"min=0,max=100"`

	// BudgetBandPct is the shortfall band size in percentage points.
	BudgetBandPct float64 `yaml:"budget_band_pct" json:"budget_band_pct" validate:"gt=0,max=100"`

	// BudgetPerBand is subtracted per shortfall band.
	BudgetPerBand float64 `yaml:"budget_per_band" json:"budget_per_band" validate:"min=0,max=100"`

	// PerReport is subtracted per adverse Contraloría report.
	PerReport float64 `yaml:"per_report" json:"per_report" validate:"min=0,max=100"`

	// PerformanceThreshold is the management score below which the
	// performance penalty starts.
	PerformanceThreshold float64 `yaml:"performance_threshold" json:"performance_threshold" validate:"min=0,max=100"`

	// PerformanceBand is the performance band size in score points.
	PerformanceBand float64 `yaml:"performance_band" json:"performance_band" validate:"gt=0,max=100"`

	// PerformancePerBand is subtracted per performance band.
	PerformancePerBand float64 `yaml:"performance_per_band" json:"performance_per_band" validate:"min=0,max=100"`

	// Cap bounds the total incumbent penalty.
	Cap float64 `yaml:"cap" json:"cap" validate:"min=0,max=100"`
}

// NewIncumbentUnit creates an IncumbentUnit with a validated configuration.
func NewIncumbentUnit(name string, config IncumbentConfig) (*IncumbentUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &IncumbentUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *IncumbentUnit) Name() string { return u.name }

// Compute returns the capped incumbent penalty. A nil performance record
// means the candidate is not an incumbent and contributes zero.
func (u *IncumbentUnit) Compute(perf *domain.IncumbentPerformance) float64 {
	if perf == nil {
		return 0
	}

	var penalty float64

	if perf.BudgetExecutionPct < u.config.BudgetThresholdPct {
		bands := math.Round((u.config.BudgetThresholdPct - perf.BudgetExecutionPct) / u.config.BudgetBandPct)
		penalty += bands * u.config.BudgetPerBand
	}

	if perf.ContraloriaReports > 0 {
		penalty += float64(perf.ContraloriaReports) * u.config.PerReport
	}

	if perf.PerformanceScore < u.config.PerformanceThreshold {
		bands := math.Round((u.config.PerformanceThreshold - perf.PerformanceScore) / u.config.PerformanceBand)
		penalty += bands * u.config.PerformancePerBand
	}

	if penalty > u.config.Cap {
		penalty = u.config.Cap
	}
	return penalty
}

// CompetenceDelta returns the bounded signed competence adjustment derived
// from budget execution: strong execution earns a small bonus, weak
// execution a small malus. The result is always within [-Bound, +Bound].
func (u *IncumbentUnit) CompetenceDelta(perf *domain.IncumbentPerformance, bound float64) float64 {
	if perf == nil {
		return 0
	}

	var delta float64
	switch {
	case perf.BudgetExecutionPct >= 90:
		delta = bound / 2
	case perf.BudgetExecutionPct >= 80:
		delta = bound / 5
	case perf.BudgetExecutionPct < u.config.BudgetThresholdPct:
		delta = -math.Round((u.config.BudgetThresholdPct-perf.BudgetExecutionPct)/u.config.BudgetBandPct) * (bound / 5)
	}

	if delta > bound {
		delta = bound
	}
	if delta < -bound {
		delta = -bound
	}
	return delta
}

// Validate checks if the unit is properly configured.
func (u *IncumbentUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultIncumbentConfig returns the production defaults: 3 points per
// 5-point shortfall band below 70% execution, 5 per Contraloría report,
// 5 per 10-point performance band below 50, capped at 40.
func DefaultIncumbentConfig() IncumbentConfig {
	return IncumbentConfig{
		BudgetThresholdPct:   70,
		BudgetBandPct:        5,
		BudgetPerBand:        3,
		PerReport:            5,
		PerformanceThreshold: 50,
		PerformanceBand:      10,
		PerformancePerBand:   5,
		Cap:                  40,
	}
}
