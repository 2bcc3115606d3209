package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestDefaultScoringConfig ensures the shipped defaults always validate.
func TestDefaultScoringConfig(t *testing.T) {
	require.NoError(t, ValidateScoringConfig(DefaultScoringConfig()))
}

// TestLoadScoringConfig_Overrides verifies that a partial file overrides
// only the named values and keeps every other default.
func TestLoadScoringConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
engine:
  workers: 4
units:
  penal:
    settled_penalty: 25
`)

	config, err := LoadScoringConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, config.Engine.Workers)
	assert.InDelta(t, 25, config.Units.Penal.SettledPenalty, 1e-9)
	assert.InDelta(t, 10, config.Units.Penal.PendingPenalty, 1e-9, "untouched defaults survive")
	assert.InDelta(t, 0.90, config.Engine.MatchThreshold, 1e-9)
}

// TestLoadScoringConfig_RejectsUnknownFields verifies strict decoding: a
// typo in a threshold name must fail loudly instead of silently keeping
// the default.
func TestLoadScoringConfig_RejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
units:
  penal:
    setled_penalty: 25
`)

	_, err := LoadScoringConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo")
}

// TestLoadScoringConfig_RejectsInvalidValues verifies that out-of-range
// driver settings and unit thresholds fail validation.
func TestLoadScoringConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "zero workers", content: "engine:\n  workers: 0\n"},
		{name: "reference year out of range", content: "engine:\n  reference_year: 1800\n"},
		{name: "match threshold above one", content: "engine:\n  match_threshold: 1.5\n"},
		{name: "unbalanced composite", content: "units:\n  composite:\n    merit:\n      competence: 0.9\n      integrity: 0.3\n      transparency: 0.1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScoringConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

// TestLoadScoringConfig_EmptyFileKeepsDefaults verifies that an empty
// document is a valid configuration.
func TestLoadScoringConfig_EmptyFileKeepsDefaults(t *testing.T) {
	config, err := LoadScoringConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultScoringConfig(), config)
}

func TestLoadScoringConfig_MissingFile(t *testing.T) {
	_, err := LoadScoringConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
