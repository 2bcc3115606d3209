package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// TestVotingUnit_Compute verifies that the voting penalty and bonus stay
// separate signed contributions and that the bonus is capped.
func TestVotingUnit_Compute(t *testing.T) {
	tests := []struct {
		name            string
		summary         *domain.VotingSummary
		expectedPenalty float64
		expectedBonus   float64
	}{
		{
			name:            "non-congresistas contribute nothing",
			summary:         nil,
			expectedPenalty: 0,
			expectedBonus:   0,
		},
		{
			name:            "neutral record contributes nothing",
			summary:         &domain.VotingSummary{InFavor: 200, Against: 50},
			expectedPenalty: 0,
			expectedBonus:   0,
		},
		{
			name: "harmful votes in favor are penalized per vote",
			summary: &domain.VotingSummary{
				ProCrimeVotesInFavor:       2,
				AntiDemocraticVotesInFavor: 1,
			},
			expectedPenalty: 24,
			expectedBonus:   0,
		},
		{
			name: "votes against pro-crime bills earn the bonus",
			summary: &domain.VotingSummary{
				ProCrimeVotesAgainst: 3,
			},
			expectedPenalty: 0,
			expectedBonus:   6,
		},
		{
			name: "bonus saturates at the cap",
			summary: &domain.VotingSummary{
				ProCrimeVotesAgainst: 20,
			},
			expectedPenalty: 0,
			expectedBonus:   10,
		},
		{
			name: "penalty and bonus coexist without netting",
			summary: &domain.VotingSummary{
				ProCrimeVotesInFavor: 1,
				ProCrimeVotesAgainst: 2,
			},
			expectedPenalty: 8,
			expectedBonus:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := NewVotingUnit("voting", DefaultVotingConfig())
			require.NoError(t, err)

			penalty, bonus := unit.Compute(tt.summary)
			assert.InDelta(t, tt.expectedPenalty, penalty, 1e-9)
			assert.InDelta(t, tt.expectedBonus, bonus, 1e-9)
		})
	}
}
