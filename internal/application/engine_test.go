package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/votolimpio/scoring-engine/internal/domain"
	"github.com/votolimpio/scoring-engine/internal/ports"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeRepo is an in-memory ports.Repository for engine tests.
type fakeRepo struct {
	mu          sync.Mutex
	candidates  map[string]domain.Candidate
	scores      map[string]domain.Score
	breakdowns  map[string]domain.ScoreBreakdown
	baselines   map[string]domain.BaselineSnapshot
	failSaveFor map[string]bool
}

func newFakeRepo(candidates ...domain.Candidate) *fakeRepo {
	repo := &fakeRepo{
		candidates:  make(map[string]domain.Candidate),
		scores:      make(map[string]domain.Score),
		breakdowns:  make(map[string]domain.ScoreBreakdown),
		baselines:   make(map[string]domain.BaselineSnapshot),
		failSaveFor: make(map[string]bool),
	}
	for _, c := range candidates {
		repo.candidates[c.ID] = c
	}
	return repo
}

func (r *fakeRepo) List(context.Context) ([]domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Candidate, 0, len(r.candidates))
	for _, c := range r.candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) Get(_ context.Context, id string) (domain.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return domain.Candidate{}, fmt.Errorf("candidate %s: %w", id, ports.ErrNotFound)
	}
	return c, nil
}

func (r *fakeRepo) UpdateCategories(_ context.Context, id string, raw domain.RawCategories, resignations int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	if !ok {
		return fmt.Errorf("candidate %s: %w", id, ports.ErrNotFound)
	}
	c.Raw = raw
	c.Resignations = resignations
	r.candidates[id] = c
	return nil
}

func (r *fakeRepo) SaveScore(_ context.Context, score domain.Score, breakdown domain.ScoreBreakdown) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSaveFor[score.CandidateID] {
		return errors.New("storage unavailable")
	}
	r.scores[score.CandidateID] = score
	r.breakdowns[score.CandidateID] = breakdown
	return nil
}

func (r *fakeRepo) GetScore(_ context.Context, id string) (domain.Score, domain.ScoreBreakdown, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	score, ok := r.scores[id]
	if !ok {
		return domain.Score{}, domain.ScoreBreakdown{}, fmt.Errorf("score %s: %w", id, ports.ErrNotFound)
	}
	return score, r.breakdowns[id], nil
}

func (r *fakeRepo) SaveBaseline(_ context.Context, snapshot domain.BaselineSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.baselines[snapshot.CandidateID] = snapshot
	return nil
}

func (r *fakeRepo) GetBaseline(_ context.Context, id string) (domain.BaselineSnapshot, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot, ok := r.baselines[id]
	return snapshot, ok, nil
}

func (r *fakeRepo) candidate(t *testing.T, id string) domain.Candidate {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.candidates[id]
	require.True(t, ok)
	return c
}

func makeCandidate(id, name string, cargo domain.Cargo) domain.Candidate {
	return domain.Candidate{
		ID:       id,
		FullName: name,
		Cargo:    cargo,
		PartyID:  "party-1",
		Raw: domain.RawCategories{
			Education: json.RawMessage(`[{"level":"universitario","completed":true}]`),
		},
		Docs: domain.TransparencyDocs{HojaDeVida: true},
	}
}

func newTestEngine(t *testing.T, repo ports.Repository) *Engine {
	t.Helper()
	config := DefaultScoringConfig()
	config.Engine.Workers = 4
	config.Engine.ReferenceYear = 2026

	engine, err := NewEngine(repo, config, nil, nil)
	require.NoError(t, err)
	return engine
}

// TestEngine_RecomputeAll verifies that a full batch scores every
// candidate and captures the pre-penalty baseline once.
func TestEngine_RecomputeAll(t *testing.T) {
	repo := newFakeRepo(
		makeCandidate("c1", "María García López", domain.CargoDiputado),
		makeCandidate("c2", "José Flores Huamán", domain.CargoSenador),
	)
	engine := newTestEngine(t, repo)

	report, err := engine.RecomputeAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Scored)
	assert.Zero(t, report.Failed)
	assert.NotEmpty(t, report.RunID)

	for _, id := range []string{"c1", "c2"} {
		score, breakdown, err := repo.GetScore(context.Background(), id)
		require.NoError(t, err)
		require.NoError(t, domain.VerifyBreakdown(score, breakdown))
		assert.Equal(t, report.RunID, score.RunID)

		baseline, ok, err := repo.GetBaseline(context.Background(), id)
		require.NoError(t, err)
		require.True(t, ok, "baseline captured at first full recompute")
		assert.InDelta(t, 100, baseline.Integrity, 1e-9)
		assert.InDelta(t, score.Competence, baseline.Competence, 1e-9)
	}
}

// TestEngine_RecomputeAll_ContinuesPastFailures verifies that one failing
// candidate is counted and skipped without aborting the batch.
func TestEngine_RecomputeAll_ContinuesPastFailures(t *testing.T) {
	repo := newFakeRepo(
		makeCandidate("c1", "María García López", domain.CargoDiputado),
		makeCandidate("c2", "José Flores Huamán", domain.CargoSenador),
		makeCandidate("c3", "Rosa Quispe Mamani", domain.CargoDiputado),
	)
	repo.failSaveFor["c2"] = true
	engine := newTestEngine(t, repo)

	report, err := engine.RecomputeAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Scored)
	assert.Equal(t, 1, report.Failed)

	_, _, err = repo.GetScore(context.Background(), "c2")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestEngine_RecomputeCandidate_NotFound(t *testing.T) {
	engine := newTestEngine(t, newFakeRepo())

	_, err := engine.RecomputeCandidate(context.Background(), "ghost")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

// TestEngine_ApplyPenaltyCategories verifies that a category added after
// the baseline was captured is replayed against the baseline, not the
// already-penalized score.
func TestEngine_ApplyPenaltyCategories(t *testing.T) {
	candidate := makeCandidate("c1", "María García López", domain.CargoDiputado)
	candidate.Raw.Penal = json.RawMessage(`[{"status":"firme"}]`)
	repo := newFakeRepo(candidate)
	engine := newTestEngine(t, repo)

	_, err := engine.RecomputeAll(context.Background())
	require.NoError(t, err)
	before, _, err := repo.GetScore(context.Background(), "c1")
	require.NoError(t, err)

	// A mining-registry link turns up later.
	updated := repo.candidate(t, "c1")
	updated.Raw.MiningRights = json.RawMessage(`[{"code":"A-1","status":"Vigente"}]`)
	repo.mu.Lock()
	repo.candidates["c1"] = updated
	repo.mu.Unlock()

	report, err := engine.ApplyPenaltyCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scored)

	after, breakdown, err := repo.GetScore(context.Background(), "c1")
	require.NoError(t, err)
	assert.InDelta(t, before.Integrity-20, after.Integrity, 1e-9)
	assert.InDelta(t, 20, breakdown.ReinfoPenalty, 1e-9)
	assert.InDelta(t, 30, breakdown.PenalPenalty, 1e-9, "existing categories replayed, not doubled")
	require.NoError(t, domain.VerifyBreakdown(after, breakdown))
}

// TestEngine_ApplyPenaltyCategories_NoBaseline verifies the fallback: a
// candidate without a snapshot gets a full recompute that captures one.
func TestEngine_ApplyPenaltyCategories_NoBaseline(t *testing.T) {
	repo := newFakeRepo(makeCandidate("c1", "María García López", domain.CargoDiputado))
	engine := newTestEngine(t, repo)

	report, err := engine.ApplyPenaltyCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scored)

	_, ok, err := repo.GetBaseline(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, ok)
}
