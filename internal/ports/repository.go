// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the engine testable.
package ports

import (
	"context"

	"github.com/votolimpio/scoring-engine/internal/domain"
)

// CandidateRepository reads candidate rows written by external ingestion.
// The engine never creates or deletes candidates; UpdateCategories exists
// only for sibling reconciliation and must never shrink existing data.
type CandidateRepository interface {
	// List returns every candidate eligible for scoring.
	List(ctx context.Context) ([]domain.Candidate, error)

	// Get returns one candidate by ID.
	Get(ctx context.Context, id string) (domain.Candidate, error)

	// UpdateCategories overwrites the raw category blobs and resignation
	// count of one candidate. Callers are responsible for the
	// union-never-shrink rule.
	UpdateCategories(ctx context.Context, id string, raw domain.RawCategories, resignations int) error
}

// ScoreStore persists scores and their audit breakdowns. SaveScore must
// write both atomically: a breakdown without its score, or the reverse,
// breaks the audit invariant.
type ScoreStore interface {
	// SaveScore overwrites the score and breakdown of one candidate in a
	// single transaction.
	SaveScore(ctx context.Context, score domain.Score, breakdown domain.ScoreBreakdown) error

	// GetScore returns the persisted score and breakdown of one candidate.
	GetScore(ctx context.Context, candidateID string) (domain.Score, domain.ScoreBreakdown, error)
}

// BaselineStore persists pre-penalty baseline snapshots. A snapshot is
// captured once, at a candidate's first full recompute, and is the only
// trusted starting point for incremental penalty-category extension.
type BaselineStore interface {
	// SaveBaseline stores the snapshot for one candidate, overwriting any
	// previous snapshot.
	SaveBaseline(ctx context.Context, snapshot domain.BaselineSnapshot) error

	// GetBaseline returns the snapshot for one candidate. The boolean is
	// false when no snapshot has been captured yet.
	GetBaseline(ctx context.Context, candidateID string) (domain.BaselineSnapshot, bool, error)
}

// Repository bundles the stores the engine needs. Infrastructure provides
// one implementation backed by a single database so per-candidate writes
// can share a transaction.
type Repository interface {
	CandidateRepository
	ScoreStore
	BaselineStore
}
