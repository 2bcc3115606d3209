package units

import (
	"fmt"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// ConfidenceUnit computes the completeness/verifiability meta-score of a
// candidate's record set. Confidence measures how much the engine knows,
// not how the candidate behaves; it is never part of a composite and
// exists for onlyClean-style filtering.
type ConfidenceUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config ConfidenceConfig
}

// ConfidenceConfig defines the relative weights of the tracked components.
type ConfidenceConfig struct {
	// IdentityWeight covers full name and party reference.
	IdentityWeight float64 `yaml:"identity_weight" json:"identity_weight" validate:"min=0,max=10"`

	// RecordWeight covers each of education, experience and trajectory.
	RecordWeight float64 `yaml:"record_weight" json:"record_weight" validate:"min=0,max=10"`

	// DocsWeight covers the disclosure-document completeness fraction.
	DocsWeight float64 `yaml:"docs_weight" json:"docs_weight" validate:"min=0,max=10"`

	// SourceWeight covers the fraction of judicial records carrying a
	// verifiable source.
	SourceWeight float64 `yaml:"source_weight" json:"source_weight" validate:"min=0,max=10"`
}

// NewConfidenceUnit creates a ConfidenceUnit with a validated
// configuration.
func NewConfidenceUnit(name string, config ConfidenceConfig) (*ConfidenceUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &ConfidenceUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *ConfidenceUnit) Name() string { return u.name }

// Inputs carries the normalized record set confidence is computed over.
type ConfidenceInputs struct {
	Candidate  domain.Candidate
	Education  []domain.EducationRecord
	Experience []domain.ExperienceRecord
	Trajectory []domain.TrajectoryRecord
	Penal      []domain.PenalSentence
	Civil      []domain.CivilSentence
}

// Compute returns the confidence score in [0,100] as the weighted share of
// complete, verifiable components.
func (u *ConfidenceUnit) Compute(in ConfidenceInputs) float64 {
	var earned, total float64

	total += u.config.IdentityWeight
	if in.Candidate.FullName != "" && in.Candidate.PartyID != "" {
		earned += u.config.IdentityWeight
	}

	for _, present := range []bool{len(in.Education) > 0, len(in.Experience) > 0, len(in.Trajectory) > 0} {
		total += u.config.RecordWeight
		if present {
			earned += u.config.RecordWeight
		}
	}

	total += u.config.DocsWeight
	earned += u.config.DocsWeight * docsFraction(in.Candidate.Docs)

	// An empty judicial record set is fully verifiable: there is nothing
	// left to verify.
	total += u.config.SourceWeight
	earned += u.config.SourceWeight * sourcedFraction(in.Penal, in.Civil)

	if total == 0 {
		return 0
	}
	return domain.Clamp0100(earned / total * 100)
}

// docsFraction is the filed share of the five disclosure components.
func docsFraction(docs domain.TransparencyDocs) float64 {
	var present int
	for _, ok := range []bool{docs.AssetsDeclaration, docs.IncomeDeclaration, docs.HojaDeVida, docs.CV, docs.Photo} {
		if ok {
			present++
		}
	}
	return float64(present) / 5
}

// sourcedFraction is the share of judicial records carrying a source.
func sourcedFraction(penal []domain.PenalSentence, civil []domain.CivilSentence) float64 {
	records := len(penal) + len(civil)
	if records == 0 {
		return 1
	}
	var sourced int
	for _, p := range penal {
		if p.Source != "" {
			sourced++
		}
	}
	for _, c := range civil {
		if c.Source != "" {
			sourced++
		}
	}
	return float64(sourced) / float64(records)
}

// Validate checks if the unit is properly configured.
func (u *ConfidenceUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultConfidenceConfig returns equal production weights.
func DefaultConfidenceConfig() ConfidenceConfig {
	return ConfidenceConfig{
		IdentityWeight: 1,
		RecordWeight:   1,
		DocsWeight:     1,
		SourceWeight:   1,
	}
}
