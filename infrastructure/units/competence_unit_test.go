package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// TestCompetenceUnit_Compute verifies the education ladder, the
// duration-weighted experience points with the public-sector bonus, and
// the elected trajectory cap.
func TestCompetenceUnit_Compute(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name       string
		education  []domain.EducationRecord
		experience []domain.ExperienceRecord
		trajectory []domain.TrajectoryRecord
		expected   float64
	}{
		{
			name:     "empty record set scores zero",
			expected: 0,
		},
		{
			name: "highest completed education level counts",
			education: []domain.EducationRecord{
				{Level: "universitario", Completed: true},
				{Level: "maestria", Completed: true},
				{Level: "doctorado", Completed: false},
			},
			expected: 70,
		},
		{
			name: "incomplete levels are ignored",
			education: []domain.EducationRecord{
				{Level: "doctorado", Completed: false},
			},
			expected: 0,
		},
		{
			name: "closed private experience earns a point per year",
			experience: []domain.ExperienceRecord{
				{Institution: "Empresa SAC", Type: "privado", YearStart: 2010, YearEnd: 2015},
			},
			expected: 5,
		},
		{
			name: "public years earn the relevance bonus",
			experience: []domain.ExperienceRecord{
				{Institution: "Ministerio de Salud", Type: "publico", YearStart: 2010, YearEnd: 2020},
			},
			expected: 15,
		},
		{
			name: "open interval closes at the reference year",
			experience: []domain.ExperienceRecord{
				{Institution: "Empresa SAC", Type: "privado", YearStart: 2020, YearEnd: 0},
			},
			expected: 5,
		},
		{
			name: "undatable entries contribute nothing",
			experience: []domain.ExperienceRecord{
				{Institution: "Empresa SAC", Type: "privado", YearStart: 0, YearEnd: 0},
			},
			expected: 0,
		},
		{
			name: "experience years are capped",
			experience: []domain.ExperienceRecord{
				{Institution: "Empresa SAC", Type: "privado", YearStart: 1990, YearEnd: 2020},
			},
			expected: 20,
		},
		{
			name: "elected positions earn points up to the cap",
			trajectory: []domain.TrajectoryRecord{
				{Type: domain.TrajectoryCargoElectivo, Result: "Electo", YearStart: intPtr(2010)},
				{Type: domain.TrajectoryCargoElectivo, Result: "Electo"},
				{Type: domain.TrajectoryCargoElectivo, Result: "Electo"},
				{Type: domain.TrajectoryCargoElectivo, Result: "Electo"},
			},
			expected: 9,
		},
		{
			name: "non-elected trajectory entries contribute nothing",
			trajectory: []domain.TrajectoryRecord{
				{Type: domain.TrajectoryCandidatura, Result: "No Electo"},
				{Type: domain.TrajectoryAfiliacion},
			},
			expected: 0,
		},
		{
			name: "full profile sums all three components",
			education: []domain.EducationRecord{
				{Level: "maestria", Completed: true},
			},
			experience: []domain.ExperienceRecord{
				{Institution: "Ministerio de Salud", Type: "publico", YearStart: 2015, YearEnd: 2025},
			},
			trajectory: []domain.TrajectoryRecord{
				{Type: domain.TrajectoryCargoElectivo, Result: "Electo"},
			},
			// 70 education + 10 years + 5 public bonus + 3 elected.
			expected: 88,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := NewCompetenceUnit("competence", DefaultCompetenceConfig())
			require.NoError(t, err)

			got := unit.Compute(tt.education, tt.experience, tt.trajectory, 2025)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

// TestCompetenceUnit_CapScalesPublicYears checks that hitting the year cap
// scales public years proportionally instead of keeping whichever entry
// came first.
func TestCompetenceUnit_CapScalesPublicYears(t *testing.T) {
	unit, err := NewCompetenceUnit("competence", DefaultCompetenceConfig())
	require.NoError(t, err)

	// 20 private years then 20 public years: 40 total capped to 20, so
	// public years scale to 10. 20*1 + 10*0.5 = 25.
	got := unit.Compute(nil, []domain.ExperienceRecord{
		{Institution: "Empresa SAC", Type: "privado", YearStart: 1980, YearEnd: 2000},
		{Institution: "Ministerio de Salud", Type: "publico", YearStart: 2000, YearEnd: 2020},
	}, nil, 2025)

	assert.InDelta(t, 25, got, 1e-9)
}
