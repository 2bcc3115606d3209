package domain

import (
	"math"
	"time"
)

// Clamp0100 bounds a category score to the valid [0,100] range.
func Clamp0100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Round1 rounds to one decimal, half away from zero, the precision
// composites are persisted with.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CompositeWeights is one fixed linear combination over the category
// scores. Confidence is never part of a composite.
type CompositeWeights struct {
	Competence   float64 `yaml:"competence" json:"competence" validate:"min=0,max=1"`
	Integrity    float64 `yaml:"integrity" json:"integrity" validate:"min=0,max=1"`
	Transparency float64 `yaml:"transparency" json:"transparency" validate:"min=0,max=1"`
}

// Sum returns the coefficient total, which must be 1.0 for a valid
// composite.
func (w CompositeWeights) Sum() float64 {
	return w.Competence + w.Integrity + w.Transparency
}

// Apply computes the weighted combination rounded to one decimal.
func (w CompositeWeights) Apply(competence, integrity, transparency float64) float64 {
	return Round1(w.Competence*competence + w.Integrity*integrity + w.Transparency*transparency)
}

// Score is the persisted scoring result for one candidate: four category
// scores in [0,100] and three composite rankings rounded to one decimal.
type Score struct {
	CandidateID string `json:"candidate_id"`

	Competence   float64 `json:"competence"`
	Integrity    float64 `json:"integrity"`
	Transparency float64 `json:"transparency"`
	Confidence   float64 `json:"confidence"`

	Balanced       float64 `json:"score_balanced"`
	Merit          float64 `json:"score_merit"`
	IntegrityFirst float64 `json:"score_integrity"`

	ComputedAt time.Time `json:"computed_at"`
	RunID      string    `json:"run_id"`
}

// CivilPenaltyItem is one itemized civil-sentence contribution, keyed by
// subtype for the audit breakdown.
type CivilPenaltyItem struct {
	Type    string  `json:"type"`
	Penalty float64 `json:"penalty"`
}

// ScoreBreakdown is the persisted audit record: every penalty and bonus
// applied to the integrity base, itemized so that applying the terms to
// the base reproduces the persisted integrity exactly.
type ScoreBreakdown struct {
	CandidateID string `json:"candidate_id"`

	IntegrityBase      float64            `json:"integrity_base"`
	PenalPenalty       float64            `json:"penal_penalty"`
	CivilPenalties     []CivilPenaltyItem `json:"civil_penalties"`
	ResignationPenalty float64            `json:"resignation_penalty"`
	ReinfoPenalty      float64            `json:"reinfo_penalty"`
	CompanyPenalty     float64            `json:"company_penalty"`
	IncumbentPenalty   float64            `json:"incumbent_penalty"`
	VotingPenalty      float64            `json:"voting_penalty"`
	VotingBonus        float64            `json:"voting_bonus"`
}

// CivilTotal sums the itemized civil contributions.
func (b ScoreBreakdown) CivilTotal() float64 {
	var total float64
	for _, item := range b.CivilPenalties {
		total += item.Penalty
	}
	return total
}

// PenaltyTotal sums every subtracted term.
func (b ScoreBreakdown) PenaltyTotal() float64 {
	return b.PenalPenalty + b.CivilTotal() + b.ResignationPenalty +
		b.ReinfoPenalty + b.CompanyPenalty + b.IncumbentPenalty + b.VotingPenalty
}

// IntegrityTotal applies the itemized terms to the base, floored at 0 and
// capped at 100. The persisted integrity score must equal this value; the
// equality is the audit invariant of the breakdown.
func (b ScoreBreakdown) IntegrityTotal() float64 {
	return Clamp0100(b.IntegrityBase - b.PenaltyTotal() + b.VotingBonus)
}

// BaselineSnapshot is the pre-penalty competence/integrity pair captured at
// a candidate's first full recompute. Incremental penalty-category
// extension always replays from this snapshot, never from an
// already-penalized score.
type BaselineSnapshot struct {
	CandidateID string    `json:"candidate_id"`
	Competence  float64   `json:"competence"`
	Integrity   float64   `json:"integrity"`
	CapturedAt  time.Time `json:"captured_at"`
	RunID       string    `json:"run_id"`
}
