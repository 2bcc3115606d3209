package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResignationUnit_Compute verifies the per-resignation weight, the cap
// and monotonicity in the count.
func TestResignationUnit_Compute(t *testing.T) {
	unit, err := NewResignationUnit("resignation", DefaultResignationConfig())
	require.NoError(t, err)

	tests := []struct {
		name         string
		resignations int
		expected     float64
	}{
		{name: "zero resignations", resignations: 0, expected: 0},
		{name: "negative count treated as zero", resignations: -1, expected: 0},
		{name: "single resignation", resignations: 1, expected: 5},
		{name: "multiple resignations", resignations: 3, expected: 15},
		{name: "count at the cap", resignations: 5, expected: 25},
		{name: "count beyond the cap saturates", resignations: 12, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, unit.Compute(tt.resignations), 1e-9)
		})
	}

	// Monotone in the count even across the cap boundary.
	previous := -1.0
	for count := 0; count <= 10; count++ {
		penalty := unit.Compute(count)
		assert.GreaterOrEqual(t, penalty, previous)
		previous = penalty
	}
}

// TestTransparencyUnit_Compute verifies the per-component disclosure score.
func TestTransparencyUnit_Compute(t *testing.T) {
	unit, err := NewTransparencyUnit("transparency", DefaultTransparencyConfig())
	require.NoError(t, err)

	assert.InDelta(t, 0, unit.Compute(domainDocs(0)), 1e-9)
	assert.InDelta(t, 40, unit.Compute(domainDocs(2)), 1e-9)
	assert.InDelta(t, 100, unit.Compute(domainDocs(5)), 1e-9)
}
