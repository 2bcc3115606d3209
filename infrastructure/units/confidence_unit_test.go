package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// domainDocs builds a docs struct with the first n of the five disclosure
// components present.
func domainDocs(n int) domain.TransparencyDocs {
	flags := []bool{n > 0, n > 1, n > 2, n > 3, n > 4}
	return domain.TransparencyDocs{
		AssetsDeclaration: flags[0],
		IncomeDeclaration: flags[1],
		HojaDeVida:        flags[2],
		CV:                flags[3],
		Photo:             flags[4],
	}
}

// TestConfidenceUnit_Compute verifies the weighted completeness score over
// identity, record presence, disclosure docs and judicial sourcing.
func TestConfidenceUnit_Compute(t *testing.T) {
	unit, err := NewConfidenceUnit("confidence", DefaultConfidenceConfig())
	require.NoError(t, err)

	fullCandidate := domain.Candidate{
		ID:       "c1",
		FullName: "Juan Perez",
		PartyID:  "p1",
		Docs:     domainDocs(5),
	}

	tests := []struct {
		name     string
		inputs   ConfidenceInputs
		expected float64
	}{
		{
			name: "complete record set with no judicial records is fully confident",
			inputs: ConfidenceInputs{
				Candidate:  fullCandidate,
				Education:  []domain.EducationRecord{{Level: "universitario", Completed: true}},
				Experience: []domain.ExperienceRecord{{Institution: "Empresa SAC"}},
				Trajectory: []domain.TrajectoryRecord{{Organization: "Partido X"}},
			},
			expected: 100,
		},
		{
			name: "empty candidate only earns the vacuous source component",
			inputs: ConfidenceInputs{
				Candidate: domain.Candidate{ID: "c2"},
			},
			// 6 components of weight 1; only the empty-judicial source
			// component is earned.
			expected: 100.0 / 6,
		},
		{
			name: "unsourced judicial records lower confidence",
			inputs: ConfidenceInputs{
				Candidate:  fullCandidate,
				Education:  []domain.EducationRecord{{Level: "universitario", Completed: true}},
				Experience: []domain.ExperienceRecord{{Institution: "Empresa SAC"}},
				Trajectory: []domain.TrajectoryRecord{{Organization: "Partido X"}},
				Penal: []domain.PenalSentence{
					{Status: domain.StatusFirme, Source: "https://cej.pj.gob.pe/caso/1"},
					{Status: domain.StatusProceso},
				},
			},
			// Five full components plus half the source component.
			expected: 5.5 / 6 * 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, unit.Compute(tt.inputs), 1e-9)
		})
	}
}

// TestProposalUnit_Compute verifies the informational proposal quality
// aggregation and its scale bound.
func TestProposalUnit_Compute(t *testing.T) {
	unit, err := NewProposalUnit("proposal", DefaultProposalConfig())
	require.NoError(t, err)

	assert.InDelta(t, 0, unit.Compute(nil), 1e-9)
	assert.InDelta(t, 7.5, unit.Compute(&domain.ProposalEvaluation{
		Specificity: 8, Viability: 7, Impact: 8, Evidence: 7,
	}), 1e-9)
	assert.InDelta(t, 10, unit.Compute(&domain.ProposalEvaluation{
		Specificity: 12, Viability: 12, Impact: 12, Evidence: 12,
	}), 1e-9)
}
