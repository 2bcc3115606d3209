package application

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/votolimpio/scoring-engine/infrastructure/units"
	"github.com/votolimpio/scoring-engine/internal/domain"
	"github.com/votolimpio/scoring-engine/internal/normalize"
	"github.com/votolimpio/scoring-engine/internal/ports"
)

// Engine drives batch scoring over a repository. All state is injected;
// the engine itself only holds configuration, calculators and the
// per-name reconciliation locks.
type Engine struct {
	repo    ports.Repository
	suite   *units.Suite
	matcher *NameMatcher
	config  ScoringConfig
	log     *zap.Logger
	metrics ports.MetricsCollector
	tracer  trace.Tracer

	// nameLocks guards concurrent reconciliations of the same sibling
	// name group. Keys are canon full names.
	nameLocks sync.Map
}

// NewEngine constructs an engine from a validated configuration. A nil
// logger or metrics collector degrades to no-op implementations so tests
// and one-off runs need no observability backend.
func NewEngine(
	repo ports.Repository,
	config ScoringConfig,
	log *zap.Logger,
	metrics ports.MetricsCollector,
) (*Engine, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if err := ValidateScoringConfig(config); err != nil {
		return nil, err
	}

	suite, err := units.NewSuite(config.Units)
	if err != nil {
		return nil, err
	}
	matcher, err := NewNameMatcher(config.Engine.MatchThreshold)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = zap.NewNop()
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &Engine{
		repo:    repo,
		suite:   suite,
		matcher: matcher,
		config:  config,
		log:     log,
		metrics: metrics,
		tracer:  otel.Tracer("scoring-engine"),
	}, nil
}

// BatchReport summarizes one batch pass. Failed counts candidates whose
// scoring or persistence failed and were skipped; the batch never aborts
// on a single candidate.
type BatchReport struct {
	RunID     string        `json:"run_id"`
	Total     int           `json:"total"`
	Scored    int           `json:"scored"`
	Failed    int           `json:"failed"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// referenceYear resolves the configured reference year, defaulting to the
// current wall-clock year.
func (e *Engine) referenceYear(now time.Time) int {
	if e.config.Engine.ReferenceYear > 0 {
		return e.config.Engine.ReferenceYear
	}
	return now.Year()
}

// RecomputeCandidate runs a full recompute for one candidate: normalize,
// compute, aggregate, and overwrite Score and ScoreBreakdown atomically.
// The pre-penalty baseline is captured on the candidate's first full
// recompute and left untouched afterwards.
func (e *Engine) RecomputeCandidate(ctx context.Context, id string) (units.Result, error) {
	candidate, err := e.repo.Get(ctx, id)
	if err != nil {
		return units.Result{}, fmt.Errorf("load candidate %s: %w", id, err)
	}
	return e.scoreCandidate(ctx, candidate, uuid.NewString(), time.Now())
}

// scoreCandidate evaluates and persists one candidate. Reads and writes
// for a single candidate are strictly sequential; parallelism only exists
// across candidates.
func (e *Engine) scoreCandidate(
	ctx context.Context,
	candidate domain.Candidate,
	runID string,
	now time.Time,
) (units.Result, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.scoreCandidate",
		trace.WithAttributes(
			attribute.String("candidate.id", candidate.ID),
			attribute.String("candidate.cargo", string(candidate.Cargo)),
			attribute.String("run.id", runID),
		),
	)
	defer span.End()

	start := time.Now()
	result := e.suite.Evaluate(candidate, e.referenceYear(now), runID, now)

	if err := domain.VerifyBreakdown(result.Score, result.Breakdown); err != nil {
		span.RecordError(err)
		return units.Result{}, err
	}

	if err := e.repo.SaveScore(ctx, result.Score, result.Breakdown); err != nil {
		span.RecordError(err)
		return units.Result{}, fmt.Errorf("persist score for %s: %w", candidate.ID, err)
	}

	if _, exists, err := e.repo.GetBaseline(ctx, candidate.ID); err == nil && !exists {
		if err := e.repo.SaveBaseline(ctx, result.Baseline); err != nil {
			span.RecordError(err)
			return units.Result{}, fmt.Errorf("persist baseline for %s: %w", candidate.ID, err)
		}
	} else if err != nil {
		span.RecordError(err)
		return units.Result{}, fmt.Errorf("load baseline for %s: %w", candidate.ID, err)
	}

	e.metrics.RecordCandidateScored(time.Since(start))
	span.SetAttributes(
		attribute.Float64("score.integrity", result.Score.Integrity),
		attribute.Float64("score.balanced", result.Score.Balanced),
	)
	return result, nil
}

// RecomputeAll runs a full recompute over every candidate with bounded
// worker-pool parallelism. A per-candidate failure is logged with the
// candidate's identity, counted, and the batch continues.
func (e *Engine) RecomputeAll(ctx context.Context) (BatchReport, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.RecomputeAll")
	defer span.End()

	runID := uuid.NewString()
	started := time.Now()

	candidates, err := e.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return BatchReport{}, fmt.Errorf("list candidates: %w", err)
	}

	var scored, failed atomic.Int64

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(e.config.Engine.Workers)

	for _, candidate := range candidates {
		group.Go(func() error {
			if _, err := e.scoreCandidate(ctx, candidate, runID, started); err != nil {
				failed.Add(1)
				e.metrics.RecordCandidateFailure()
				e.log.Error("candidate recompute failed",
					zap.String("run_id", runID),
					zap.String("candidate_id", candidate.ID),
					zap.String("full_name", candidate.FullName),
					zap.Error(err),
				)
				// Per-candidate failures never abort the batch.
				return nil
			}
			scored.Add(1)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		span.RecordError(err)
		return BatchReport{}, err
	}

	report := BatchReport{
		RunID:     runID,
		Total:     len(candidates),
		Scored:    int(scored.Load()),
		Failed:    int(failed.Load()),
		StartedAt: started,
		Duration:  time.Since(started),
	}

	e.metrics.SetLastRun(time.Now())
	e.log.Info("batch recompute finished",
		zap.String("run_id", runID),
		zap.Int("total", report.Total),
		zap.Int("scored", report.Scored),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

// ApplyPenaltyCategories replays every penalty category, including newly
// added ones, from each candidate's persisted pre-penalty baseline.
// Replaying from the baseline is what makes adding a category safe:
// subtracting a new penalty from an already-penalized score would
// double-count the old ones. Candidates with no baseline yet fall back to
// a full recompute, which captures it.
func (e *Engine) ApplyPenaltyCategories(ctx context.Context) (BatchReport, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.ApplyPenaltyCategories")
	defer span.End()

	runID := uuid.NewString()
	started := time.Now()

	candidates, err := e.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return BatchReport{}, fmt.Errorf("list candidates: %w", err)
	}

	var scored, failed atomic.Int64

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(e.config.Engine.Workers)

	for _, candidate := range candidates {
		group.Go(func() error {
			if err := e.replayFromBaseline(ctx, candidate, runID, started); err != nil {
				failed.Add(1)
				e.metrics.RecordCandidateFailure()
				e.log.Error("baseline replay failed",
					zap.String("run_id", runID),
					zap.String("candidate_id", candidate.ID),
					zap.Error(err),
				)
				return nil
			}
			scored.Add(1)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		span.RecordError(err)
		return BatchReport{}, err
	}

	report := BatchReport{
		RunID:     runID,
		Total:     len(candidates),
		Scored:    int(scored.Load()),
		Failed:    int(failed.Load()),
		StartedAt: started,
		Duration:  time.Since(started),
	}

	e.metrics.SetLastRun(time.Now())
	e.log.Info("penalty replay finished",
		zap.String("run_id", runID),
		zap.Int("scored", report.Scored),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// replayFromBaseline applies all penalty categories against the trusted
// baseline snapshot for one candidate.
func (e *Engine) replayFromBaseline(
	ctx context.Context,
	candidate domain.Candidate,
	runID string,
	now time.Time,
) error {
	baseline, exists, err := e.repo.GetBaseline(ctx, candidate.ID)
	if err != nil {
		return fmt.Errorf("load baseline for %s: %w", candidate.ID, err)
	}
	if !exists {
		_, err := e.scoreCandidate(ctx, candidate, runID, now)
		return err
	}

	result := e.suite.EvaluateFromBaseline(candidate, baseline, runID, now)
	if err := domain.VerifyBreakdown(result.Score, result.Breakdown); err != nil {
		return err
	}
	if err := e.repo.SaveScore(ctx, result.Score, result.Breakdown); err != nil {
		return fmt.Errorf("persist score for %s: %w", candidate.ID, err)
	}
	e.metrics.RecordCandidateScored(time.Since(now))
	return nil
}

// lockName serializes work on one sibling name group.
func (e *Engine) lockName(canonName string) func() {
	actual, _ := e.nameLocks.LoadOrStore(canonName, &sync.Mutex{})
	mu := actual.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// canonName is the grouping key for sibling records.
func canonName(fullName string) string {
	return normalize.Canon(fullName)
}
