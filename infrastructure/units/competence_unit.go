package units

import (
	"fmt"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// CompetenceUnit computes the competence base score from education level,
// work-experience relevance and duration, and political trajectory. The
// bounded incumbent budget-execution delta is applied on top of this base
// by the aggregation, not here.
type CompetenceUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config CompetenceConfig
}

// CompetenceConfig defines the education ladder and experience weights.
type CompetenceConfig struct {
	// EducationPoints maps canonical education levels to base points.
	// The highest completed level counts.
	EducationPoints map[string]float64 `yaml:"education_points" json:"education_points" validate:"required,min=1"`

	// PointsPerYear is earned per year of work experience.
	PointsPerYear float64 `yaml:"points_per_year" json:"points_per_year" validate:"min=0,max=10"`

	// PublicBonusPerYear is earned additionally per public-sector year,
	// rewarding directly relevant experience.
	PublicBonusPerYear float64 `yaml:"public_bonus_per_year" json:"public_bonus_per_year" validate:"min=0,max=10"`

	// ExperienceYearCap bounds the counted years of experience.
	ExperienceYearCap int `yaml:"experience_year_cap" json:"experience_year_cap" validate:"min=1,max=60"`

	// ElectedPoints is earned per elected trajectory entry.
	ElectedPoints float64 `yaml:"elected_points" json:"elected_points" validate:"min=0,max=50"`

	// ElectedCap bounds the trajectory contribution.
	ElectedCap float64 `yaml:"elected_cap" json:"elected_cap" validate:"min=0,max=50"`
}

// NewCompetenceUnit creates a CompetenceUnit with a validated
// configuration.
func NewCompetenceUnit(name string, config CompetenceConfig) (*CompetenceUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &CompetenceUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *CompetenceUnit) Name() string { return u.name }

// Compute returns the competence base score, clamped to [0,100].
// referenceYear closes open experience intervals: a YearEnd of 0 is the
// "ongoing or undatable" sentinel and is read as the reference year when
// the start year is known.
func (u *CompetenceUnit) Compute(
	education []domain.EducationRecord,
	experience []domain.ExperienceRecord,
	trajectory []domain.TrajectoryRecord,
	referenceYear int,
) float64 {
	base := u.educationBase(education)
	base += u.experiencePoints(experience, referenceYear)
	base += u.trajectoryPoints(trajectory)
	return domain.Clamp0100(base)
}

// educationBase returns the points of the highest completed level.
func (u *CompetenceUnit) educationBase(education []domain.EducationRecord) float64 {
	var best float64
	for _, e := range education {
		if !e.Completed {
			continue
		}
		if pts, ok := u.config.EducationPoints[e.Level]; ok && pts > best {
			best = pts
		}
	}
	return best
}

// experiencePoints sums duration-weighted experience with a public-sector
// relevance bonus, capping total counted years.
func (u *CompetenceUnit) experiencePoints(experience []domain.ExperienceRecord, referenceYear int) float64 {
	var totalYears, publicYears int
	for _, e := range experience {
		if e.YearStart <= 0 {
			continue
		}
		end := e.YearEnd
		if end == 0 {
			end = referenceYear
		}
		years := end - e.YearStart
		if years <= 0 {
			continue
		}
		totalYears += years
		if e.Type == "publico" {
			publicYears += years
		}
	}

	if totalYears > u.config.ExperienceYearCap {
		// Scale public years proportionally so the cap does not favor
		// whichever entry happened to be listed first.
		publicYears = publicYears * u.config.ExperienceYearCap / totalYears
		totalYears = u.config.ExperienceYearCap
	}

	return float64(totalYears)*u.config.PointsPerYear + float64(publicYears)*u.config.PublicBonusPerYear
}

// trajectoryPoints rewards elected positions up to a cap. Entries with nil
// years still count: being elected is known even when the term is not.
func (u *CompetenceUnit) trajectoryPoints(trajectory []domain.TrajectoryRecord) float64 {
	var points float64
	for _, t := range trajectory {
		if t.Type == domain.TrajectoryCargoElectivo && t.Result == "Electo" {
			points += u.config.ElectedPoints
		}
	}
	if points > u.config.ElectedCap {
		points = u.config.ElectedCap
	}
	return points
}

// Validate checks if the unit is properly configured.
func (u *CompetenceUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultCompetenceConfig returns the production defaults.
func DefaultCompetenceConfig() CompetenceConfig {
	return CompetenceConfig{
		EducationPoints: map[string]float64{
			"sin_nivel":     10,
			"primaria":      20,
			"secundaria":    30,
			"tecnico":       40,
			"universitario": 55,
			"titulado":      60,
			"maestria":      70,
			"doctorado":     80,
		},
		PointsPerYear:      1,
		PublicBonusPerYear: 0.5,
		ExperienceYearCap:  20,
		ElectedPoints:      3,
		ElectedCap:         9,
	}
}
