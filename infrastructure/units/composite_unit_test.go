package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// TestCompositeUnit_Compute verifies the three fixed weighted rankings and
// their one-decimal rounding.
func TestCompositeUnit_Compute(t *testing.T) {
	tests := []struct {
		name           string
		competence     float64
		integrity      float64
		transparency   float64
		balanced       float64
		merit          float64
		integrityFirst float64
	}{
		{
			name:       "all zero",
			competence: 0, integrity: 0, transparency: 0,
			balanced: 0, merit: 0, integrityFirst: 0,
		},
		{
			name:       "all hundred",
			competence: 100, integrity: 100, transparency: 100,
			balanced: 100, merit: 100, integrityFirst: 100,
		},
		{
			name:       "asymmetric profile separates the rankings",
			competence: 80, integrity: 40, transparency: 100,
			// balanced: .45*80 + .45*40 + .10*100 = 64
			// merit:    .60*80 + .30*40 + .10*100 = 70
			// integrity-first: .30*80 + .60*40 + .10*100 = 58
			balanced: 64, merit: 70, integrityFirst: 58,
		},
		{
			name:       "results round to one decimal",
			competence: 33.33, integrity: 66.67, transparency: 50,
			// balanced: .45*33.33 + .45*66.67 + .10*50 = 50.0
			// merit:    .60*33.33 + .30*66.67 + .10*50 = 44.999 -> 45.0
			// integrity-first: .30*33.33 + .60*66.67 + .10*50 = 55.001 -> 55.0
			balanced: 50, merit: 45, integrityFirst: 55,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := NewCompositeUnit("composite", DefaultCompositeConfig())
			require.NoError(t, err)

			balanced, merit, integrityFirst := unit.Compute(tt.competence, tt.integrity, tt.transparency)
			assert.InDelta(t, tt.balanced, balanced, 1e-9)
			assert.InDelta(t, tt.merit, merit, 1e-9)
			assert.InDelta(t, tt.integrityFirst, integrityFirst, 1e-9)
		})
	}
}

// TestCompositeUnit_Validate rejects coefficient sets that do not sum to
// exactly 1.0.
func TestCompositeUnit_Validate(t *testing.T) {
	config := DefaultCompositeConfig()
	config.Merit = domain.CompositeWeights{Competence: 0.6, Integrity: 0.3, Transparency: 0.2}

	_, err := NewCompositeUnit("composite", config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merit")
}
