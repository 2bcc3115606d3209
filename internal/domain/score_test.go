package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp0100(t *testing.T) {
	assert.Equal(t, 0.0, Clamp0100(-5))
	assert.Equal(t, 42.5, Clamp0100(42.5))
	assert.Equal(t, 100.0, Clamp0100(130))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 53.9, Round1(53.94))
	assert.Equal(t, 54.0, Round1(53.95))
	assert.Equal(t, -1.5, Round1(-1.45))
}

// TestScoreBreakdown_IntegrityTotal verifies that the itemized terms
// reproduce the integrity score, including the floor and ceiling.
func TestScoreBreakdown_IntegrityTotal(t *testing.T) {
	breakdown := ScoreBreakdown{
		IntegrityBase: 100,
		PenalPenalty:  30,
		CivilPenalties: []CivilPenaltyItem{
			{Type: CivilAlimentos, Penalty: 15},
			{Type: CivilLaboral, Penalty: 5},
		},
		ResignationPenalty: 10,
		VotingPenalty:      8,
		VotingBonus:        4,
	}

	assert.InDelta(t, 20, breakdown.CivilTotal(), 1e-9)
	assert.InDelta(t, 68, breakdown.PenaltyTotal(), 1e-9)
	assert.InDelta(t, 36, breakdown.IntegrityTotal(), 1e-9)

	breakdown.CompanyPenalty = 60
	assert.Zero(t, breakdown.IntegrityTotal(), "floored at zero")

	bonusOnly := ScoreBreakdown{IntegrityBase: 100, VotingBonus: 10}
	assert.Equal(t, 100.0, bonusOnly.IntegrityTotal(), "capped at one hundred")
}

// TestVerifyBreakdown checks the audit invariant enforcement.
func TestVerifyBreakdown(t *testing.T) {
	breakdown := ScoreBreakdown{IntegrityBase: 100, PenalPenalty: 30}
	score := Score{Integrity: 70}

	assert.NoError(t, VerifyBreakdown(score, breakdown))

	score.Integrity = 69
	assert.ErrorIs(t, VerifyBreakdown(score, breakdown), ErrBreakdownMismatch)
}

func TestCargoValid(t *testing.T) {
	assert.True(t, CargoSenador.Valid())
	assert.True(t, CargoParlamentoAndino.Valid())
	assert.False(t, Cargo("alcalde").Valid())
	assert.False(t, Cargo("").Valid())
}
