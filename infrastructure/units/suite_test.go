package units

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

func newTestSuite(t *testing.T) *Suite {
	t.Helper()
	suite, err := NewSuite(DefaultSuiteConfig())
	require.NoError(t, err)
	return suite
}

func testCandidate() domain.Candidate {
	return domain.Candidate{
		ID:       "cand-1",
		FullName: "María García López",
		Cargo:    domain.CargoDiputado,
		PartyID:  "party-1",
		Raw: domain.RawCategories{
			Education:  json.RawMessage(`[{"level":"Maestría","completed":true}]`),
			Experience: json.RawMessage(`[{"organization":"MINISTERIO DE SALUD","start_year":"2010","end_year":null}]`),
			Penal:      json.RawMessage(`[{"type":"peculado","status":"firme","source":"https://cej.pj.gob.pe/x"}]`),
			Civil:      json.RawMessage(`[{"type":"alimentos","source":"https://cej.pj.gob.pe/y"}]`),
		},
		Resignations: 2,
		Docs: domain.TransparencyDocs{
			AssetsDeclaration: true,
			IncomeDeclaration: true,
			HojaDeVida:        true,
			CV:                true,
		},
		Voting: &domain.VotingSummary{
			ProCrimeVotesInFavor: 1,
			ProCrimeVotesAgainst: 2,
		},
	}
}

// TestSuite_Evaluate_AuditInvariant checks that applying the breakdown's
// itemized terms to its base reproduces the persisted integrity exactly.
func TestSuite_Evaluate_AuditInvariant(t *testing.T) {
	suite := newTestSuite(t)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	result := suite.Evaluate(testCandidate(), 2026, "run-1", now)

	require.NoError(t, domain.VerifyBreakdown(result.Score, result.Breakdown))

	// 100 base - 30 penal - 15 civil - 10 resignations - 8 voting + 4 bonus.
	assert.InDelta(t, 41, result.Score.Integrity, 1e-9)
	assert.InDelta(t, 30, result.Breakdown.PenalPenalty, 1e-9)
	assert.InDelta(t, 15, result.Breakdown.CivilTotal(), 1e-9)
	assert.InDelta(t, 10, result.Breakdown.ResignationPenalty, 1e-9)
	assert.InDelta(t, 8, result.Breakdown.VotingPenalty, 1e-9)
	assert.InDelta(t, 4, result.Breakdown.VotingBonus, 1e-9)

	// 70 education + 16 years of public experience (16 + 8 bonus = 94).
	assert.InDelta(t, 94, result.Score.Competence, 1e-9)
	assert.InDelta(t, 80, result.Score.Transparency, 1e-9)
}

// TestSuite_Evaluate_Deterministic checks that the same candidate, run
// identity and clock always produce the same result.
func TestSuite_Evaluate_Deterministic(t *testing.T) {
	suite := newTestSuite(t)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	candidate := testCandidate()

	first := suite.Evaluate(candidate, 2026, "run-1", now)
	second := suite.Evaluate(candidate, 2026, "run-1", now)

	assert.Equal(t, first, second)
}

// TestSuite_Evaluate_IntegrityFloor checks that an arbitrarily bad record
// floors integrity at zero instead of going negative.
func TestSuite_Evaluate_IntegrityFloor(t *testing.T) {
	suite := newTestSuite(t)
	candidate := testCandidate()
	candidate.Raw.Penal = json.RawMessage(`[
		{"status":"firme"},{"status":"firme"},{"status":"firme"},
		{"status":"firme"},{"status":"firme"}
	]`)
	candidate.Company = &domain.CompanyIssues{Penal: 3}

	result := suite.Evaluate(candidate, 2026, "run-1", time.Now())

	assert.Zero(t, result.Score.Integrity)
	require.NoError(t, domain.VerifyBreakdown(result.Score, result.Breakdown))
}

// TestSuite_Evaluate_MalformedCategoryDegrades checks that an unparsable
// category blob neutralizes only that category.
func TestSuite_Evaluate_MalformedCategoryDegrades(t *testing.T) {
	suite := newTestSuite(t)
	candidate := testCandidate()
	candidate.Raw.Penal = json.RawMessage(`{"broken`)

	result := suite.Evaluate(candidate, 2026, "run-1", time.Now())

	assert.Zero(t, result.Breakdown.PenalPenalty)
	// The civil category still applies.
	assert.InDelta(t, 15, result.Breakdown.CivilTotal(), 1e-9)
}

// TestSuite_Evaluate_BaselineCapture checks that the returned baseline is
// the pre-penalty pair: final competence, untouched integrity base.
func TestSuite_Evaluate_BaselineCapture(t *testing.T) {
	suite := newTestSuite(t)
	result := suite.Evaluate(testCandidate(), 2026, "run-1", time.Now())

	assert.Equal(t, "cand-1", result.Baseline.CandidateID)
	assert.InDelta(t, result.Score.Competence, result.Baseline.Competence, 1e-9)
	assert.InDelta(t, 100, result.Baseline.Integrity, 1e-9)
}

// TestSuite_EvaluateFromBaseline_MatchesFullRecompute checks that replaying
// every penalty category from the captured baseline reproduces the full
// recompute, which is what makes incremental extension safe.
func TestSuite_EvaluateFromBaseline_MatchesFullRecompute(t *testing.T) {
	suite := newTestSuite(t)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	candidate := testCandidate()

	full := suite.Evaluate(candidate, 2026, "run-1", now)
	replayed := suite.EvaluateFromBaseline(candidate, full.Baseline, "run-2", now)

	assert.InDelta(t, full.Score.Integrity, replayed.Score.Integrity, 1e-9)
	assert.InDelta(t, full.Score.Competence, replayed.Score.Competence, 1e-9)
	assert.InDelta(t, full.Score.Balanced, replayed.Score.Balanced, 1e-9)
	require.NoError(t, domain.VerifyBreakdown(replayed.Score, replayed.Breakdown))
}

// TestSuite_EvaluateFromBaseline_NewCategory checks that a category added
// after the baseline was captured subtracts from the baseline, not from
// the already-penalized score.
func TestSuite_EvaluateFromBaseline_NewCategory(t *testing.T) {
	suite := newTestSuite(t)
	now := time.Now()
	candidate := testCandidate()

	full := suite.Evaluate(candidate, 2026, "run-1", now)

	// A REINFO link turns up after the first recompute.
	candidate.Raw.MiningRights = json.RawMessage(`[{"code":"A-1","status":"VIGENTE"}]`)
	replayed := suite.EvaluateFromBaseline(candidate, full.Baseline, "run-2", now)

	assert.InDelta(t, full.Score.Integrity-20, replayed.Score.Integrity, 1e-9)
	assert.InDelta(t, 20, replayed.Breakdown.ReinfoPenalty, 1e-9)
	require.NoError(t, domain.VerifyBreakdown(replayed.Score, replayed.Breakdown))
}
