package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// TestCompanyUnit_Compute verifies the weighted company penalty, the
// consumidor threshold rule and the category cap.
func TestCompanyUnit_Compute(t *testing.T) {
	tests := []struct {
		name     string
		issues   *domain.CompanyIssues
		expected float64
	}{
		{
			name:     "no linked companies contribute nothing",
			issues:   nil,
			expected: 0,
		},
		{
			name:     "clean companies contribute nothing",
			issues:   &domain.CompanyIssues{},
			expected: 0,
		},
		{
			name:     "single penal issue",
			issues:   &domain.CompanyIssues{Penal: 1},
			expected: 40,
		},
		{
			name:     "ambiental and laboral weights",
			issues:   &domain.CompanyIssues{Ambiental: 1, Laboral: 1},
			expected: 45,
		},
		{
			name:     "consumidor at the threshold does not fire",
			issues:   &domain.CompanyIssues{Consumidor: 5},
			expected: 0,
		},
		{
			name:     "consumidor above the threshold fires once",
			issues:   &domain.CompanyIssues{Consumidor: 6},
			expected: 15,
		},
		{
			name:     "heavy record saturates at the cap",
			issues:   &domain.CompanyIssues{Penal: 5, Consumidor: 10},
			expected: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := NewCompanyUnit("company", DefaultCompanyConfig())
			require.NoError(t, err)

			assert.InDelta(t, tt.expected, unit.Compute(tt.issues), 1e-9)
		})
	}
}
