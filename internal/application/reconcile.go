package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/votolimpio/scoring-engine/internal/domain"
	"github.com/votolimpio/scoring-engine/internal/ports"
)

// ReconcileReport summarizes one reconciliation pass over sibling records.
type ReconcileReport struct {
	RunID string `json:"run_id"`

	// Groups is the number of distinct name groups processed.
	Groups int `json:"groups"`

	// Propagated counts groups where at least one sibling received data.
	Propagated int `json:"propagated"`

	// Noop counts groups whose siblings already agreed.
	Noop int `json:"noop"`

	// Ambiguous counts singleton records whose fuzzy match cleared the
	// threshold for more than one group. They are skipped, never guessed.
	Ambiguous int `json:"ambiguous"`

	// AmbiguousNames lists the skipped names for manual review.
	AmbiguousNames []string `json:"ambiguous_names,omitempty"`

	// Rescored counts siblings re-scored after receiving data.
	Rescored int `json:"rescored"`

	// Failed counts siblings whose update or re-score failed.
	Failed int `json:"failed"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// siblingGroup is one set of candidate rows believed to name the same
// person.
type siblingGroup struct {
	key     string
	members []domain.Candidate
}

// Reconcile propagates judicial and registry findings across sibling
// records of the same person, then re-scores every sibling that received
// data. A finding attached to one cargo registration applies to the
// person, not the registration.
//
// Grouping is by canon full name. Singleton records are additionally
// fuzzy-matched against the other groups; a record matching exactly one
// group joins it, a record matching more than one is reported as
// ambiguous and left untouched. Propagation follows the union rule: a
// sibling missing a category receives the whole category from a sibling
// that has it, and existing data is never shrunk or overwritten.
func (e *Engine) Reconcile(ctx context.Context) (ReconcileReport, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.Reconcile")
	defer span.End()

	runID := uuid.NewString()
	started := time.Now()

	candidates, err := e.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return ReconcileReport{}, fmt.Errorf("list candidates: %w", err)
	}

	groups, ambiguousNames := e.groupSiblings(candidates)

	report := ReconcileReport{
		RunID:          runID,
		Groups:         len(groups),
		Ambiguous:      len(ambiguousNames),
		AmbiguousNames: ambiguousNames,
		StartedAt:      started,
	}
	for _, name := range ambiguousNames {
		e.metrics.RecordReconciliation(ports.ReconcileOutcomeAmbiguous)
		e.log.Warn("ambiguous sibling match, skipped",
			zap.String("run_id", runID),
			zap.String("full_name", name),
		)
	}

	var propagated, noop, rescored, failed atomic.Int64

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(e.config.Engine.Workers)

	for _, sg := range groups {
		group.Go(func() error {
			changed, reErr := e.reconcileGroup(ctx, sg, runID, started)
			if reErr != nil {
				failed.Add(int64(len(sg.members)))
				e.log.Error("sibling group reconciliation failed",
					zap.String("run_id", runID),
					zap.String("group", sg.key),
					zap.Error(reErr),
				)
				return nil
			}
			if changed == 0 {
				noop.Add(1)
				e.metrics.RecordReconciliation(ports.ReconcileOutcomeNoop)
				return nil
			}
			propagated.Add(1)
			rescored.Add(int64(changed))
			e.metrics.RecordReconciliation(ports.ReconcileOutcomePropagated)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		span.RecordError(err)
		return ReconcileReport{}, err
	}

	report.Propagated = int(propagated.Load())
	report.Noop = int(noop.Load())
	report.Rescored = int(rescored.Load())
	report.Failed = int(failed.Load())
	report.Duration = time.Since(started)

	e.log.Info("reconciliation finished",
		zap.String("run_id", runID),
		zap.Int("groups", report.Groups),
		zap.Int("propagated", report.Propagated),
		zap.Int("ambiguous", report.Ambiguous),
		zap.Int("rescored", report.Rescored),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// groupSiblings partitions candidates into name groups. Exact canon-name
// equality forms the initial groups; singletons then get one fuzzy-match
// attempt against the multi-member group keys. Returns the groups plus
// the names whose match was ambiguous.
func (e *Engine) groupSiblings(candidates []domain.Candidate) ([]siblingGroup, []string) {
	byName := make(map[string][]domain.Candidate)
	for _, c := range candidates {
		key := canonName(c.FullName)
		byName[key] = append(byName[key], c)
	}

	keys := make([]string, 0, len(byName))
	for key := range byName {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Fuzzy pass: singletons may be misspelled registrations of an
	// existing group.
	var pool []string
	for _, key := range keys {
		if len(byName[key]) > 1 {
			pool = append(pool, key)
		}
	}

	var ambiguous []string
	for _, key := range keys {
		members := byName[key]
		if len(members) != 1 || len(pool) == 0 {
			continue
		}
		idx, err := e.matcher.Match(key, pool)
		switch {
		case err == nil:
			target := pool[idx]
			byName[target] = append(byName[target], members[0])
			delete(byName, key)
		case errors.Is(err, ErrAmbiguousMatch):
			ambiguous = append(ambiguous, members[0].FullName)
			delete(byName, key)
		case errors.Is(err, ErrNoMatch):
			// Genuine standalone registration, nothing to reconcile.
		}
	}

	groups := make([]siblingGroup, 0, len(byName))
	remaining := make([]string, 0, len(byName))
	for key := range byName {
		remaining = append(remaining, key)
	}
	sort.Strings(remaining)
	for _, key := range remaining {
		groups = append(groups, siblingGroup{key: key, members: byName[key]})
	}
	return groups, ambiguous
}

// reconcileGroup applies the union rule within one group and re-scores
// every sibling that changed. Returns the number of changed siblings.
func (e *Engine) reconcileGroup(
	ctx context.Context,
	sg siblingGroup,
	runID string,
	now time.Time,
) (int, error) {
	if len(sg.members) < 2 {
		return 0, nil
	}

	unlock := e.lockName(sg.key)
	defer unlock()

	// Read-then-write under the group lock: re-load each sibling so a
	// concurrent recompute cannot be interleaved with stale data.
	fresh := make([]domain.Candidate, 0, len(sg.members))
	for _, member := range sg.members {
		c, err := e.repo.Get(ctx, member.ID)
		if err != nil {
			return 0, fmt.Errorf("reload sibling %s: %w", member.ID, err)
		}
		fresh = append(fresh, c)
	}

	union, maxResignations := groupUnion(fresh)

	changed := 0
	for _, member := range fresh {
		merged, dirty := mergeCategories(member.Raw, union)
		if member.Resignations < maxResignations {
			dirty = true
		}
		if !dirty {
			continue
		}

		resignations := member.Resignations
		if maxResignations > resignations {
			resignations = maxResignations
		}
		if err := e.repo.UpdateCategories(ctx, member.ID, merged, resignations); err != nil {
			return changed, fmt.Errorf("propagate to sibling %s: %w", member.ID, err)
		}

		member.Raw = merged
		member.Resignations = resignations
		if _, err := e.scoreCandidate(ctx, member, runID, now); err != nil {
			return changed, fmt.Errorf("re-score sibling %s: %w", member.ID, err)
		}
		changed++

		e.log.Info("propagated findings to sibling",
			zap.String("run_id", runID),
			zap.String("candidate_id", member.ID),
			zap.String("cargo", string(member.Cargo)),
			zap.String("group", sg.key),
		)
	}
	return changed, nil
}

// groupUnion collects, per category, the blob of the first sibling that
// has data, plus the maximum resignation count. First-wins is safe
// because propagation only ever fills empty categories.
func groupUnion(members []domain.Candidate) (domain.RawCategories, int) {
	var union domain.RawCategories
	maxResignations := 0
	for _, member := range members {
		union.Education = firstRaw(union.Education, member.Raw.Education)
		union.Experience = firstRaw(union.Experience, member.Raw.Experience)
		union.Trajectory = firstRaw(union.Trajectory, member.Raw.Trajectory)
		union.Penal = firstRaw(union.Penal, member.Raw.Penal)
		union.Civil = firstRaw(union.Civil, member.Raw.Civil)
		union.MiningRights = firstRaw(union.MiningRights, member.Raw.MiningRights)
		if member.Resignations > maxResignations {
			maxResignations = member.Resignations
		}
	}
	return union, maxResignations
}

// mergeCategories fills each empty category of raw from the group union.
// Existing data always wins; nothing is ever overwritten or shrunk.
func mergeCategories(raw, union domain.RawCategories) (domain.RawCategories, bool) {
	dirty := false
	fill := func(dst *json.RawMessage, src json.RawMessage) {
		if rawEmpty(*dst) && !rawEmpty(src) {
			*dst = src
			dirty = true
		}
	}
	fill(&raw.Education, union.Education)
	fill(&raw.Experience, union.Experience)
	fill(&raw.Trajectory, union.Trajectory)
	fill(&raw.Penal, union.Penal)
	fill(&raw.Civil, union.Civil)
	fill(&raw.MiningRights, union.MiningRights)
	return raw, dirty
}

func firstRaw(current, candidate json.RawMessage) json.RawMessage {
	if !rawEmpty(current) {
		return current
	}
	return candidate
}

func rawEmpty(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", "[]", "{}":
		return true
	}
	return false
}
