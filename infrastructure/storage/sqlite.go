// Package storage provides the SQLite-backed implementation of the
// repository ports. A single database file holds candidates, scores,
// audit breakdowns and pre-penalty baselines so a score and its breakdown
// can share one transaction.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/votolimpio/scoring-engine/internal/domain"
	"github.com/votolimpio/scoring-engine/internal/ports"
)

// SQLiteRepository implements ports.Repository on a local SQLite file.
type SQLiteRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.Repository = (*SQLiteRepository)(nil)

// Open creates or opens the scoring database at path and ensures the
// schema exists. WAL mode keeps concurrent worker writes from blocking
// readers.
func Open(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
	if err := repo.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return repo, nil
}

// Close closes the underlying database.
func (r *SQLiteRepository) Close() error { return r.db.Close() }

func (r *SQLiteRepository) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		cargo TEXT NOT NULL,
		party_id TEXT NOT NULL,
		raw_json TEXT NOT NULL DEFAULT '{}',
		resignations INTEGER NOT NULL DEFAULT 0,
		docs_json TEXT NOT NULL DEFAULT '{}',
		incumbent_json TEXT,
		voting_json TEXT,
		company_json TEXT,
		proposals_json TEXT,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_candidates_full_name ON candidates(full_name);

	CREATE TABLE IF NOT EXISTS scores (
		candidate_id TEXT PRIMARY KEY REFERENCES candidates(id),
		competence REAL NOT NULL,
		integrity REAL NOT NULL,
		transparency REAL NOT NULL,
		confidence REAL NOT NULL,
		score_balanced REAL NOT NULL,
		score_merit REAL NOT NULL,
		score_integrity REAL NOT NULL,
		computed_at DATETIME NOT NULL,
		run_id TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS breakdowns (
		candidate_id TEXT PRIMARY KEY REFERENCES candidates(id),
		integrity_base REAL NOT NULL,
		penal_penalty REAL NOT NULL,
		civil_penalties_json TEXT NOT NULL DEFAULT '[]',
		resignation_penalty REAL NOT NULL,
		reinfo_penalty REAL NOT NULL,
		company_penalty REAL NOT NULL,
		incumbent_penalty REAL NOT NULL,
		voting_penalty REAL NOT NULL,
		voting_bonus REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS baselines (
		candidate_id TEXT PRIMARY KEY REFERENCES candidates(id),
		competence REAL NOT NULL,
		integrity REAL NOT NULL,
		captured_at DATETIME NOT NULL,
		run_id TEXT NOT NULL
	);`

	if _, err := r.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// candidateColumns is the select list shared by List and Get.
var candidateColumns = []string{
	"id", "full_name", "cargo", "party_id", "raw_json", "resignations",
	"docs_json", "incumbent_json", "voting_json", "company_json",
	"proposals_json", "updated_at",
}

// List returns every candidate ordered by ID for deterministic batches.
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Candidate, error) {
	query, args, err := r.builder.
		Select(candidateColumns...).
		From("candidates").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, ports.NewRepositoryError("candidate", "list", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ports.NewRepositoryError("candidate", "list", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, ports.NewRepositoryError("candidate", "list", err)
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, ports.NewRepositoryError("candidate", "list", err)
	}
	return candidates, nil
}

// Get returns one candidate by ID, wrapping ports.ErrNotFound when the
// row does not exist.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (domain.Candidate, error) {
	query, args, err := r.builder.
		Select(candidateColumns...).
		From("candidates").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Candidate{}, ports.NewRepositoryError("candidate", "get", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	candidate, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Candidate{}, ports.NewRepositoryError("candidate", "get",
			fmt.Errorf("candidate %s: %w", id, ports.ErrNotFound))
	}
	if err != nil {
		return domain.Candidate{}, ports.NewRepositoryError("candidate", "get", err)
	}
	return candidate, nil
}

// UpsertCandidate writes one candidate row. Ingestion and tests use it;
// the scoring engine itself only reads candidates.
func (r *SQLiteRepository) UpsertCandidate(ctx context.Context, c domain.Candidate) error {
	rawJSON, err := json.Marshal(c.Raw)
	if err != nil {
		return ports.NewRepositoryError("candidate", "upsert", err)
	}
	docsJSON, err := json.Marshal(c.Docs)
	if err != nil {
		return ports.NewRepositoryError("candidate", "upsert", err)
	}
	incumbentJSON, err := marshalNullable(c.Incumbent)
	if err != nil {
		return ports.NewRepositoryError("candidate", "upsert", err)
	}
	votingJSON, err := marshalNullable(c.Voting)
	if err != nil {
		return ports.NewRepositoryError("candidate", "upsert", err)
	}
	companyJSON, err := marshalNullable(c.Company)
	if err != nil {
		return ports.NewRepositoryError("candidate", "upsert", err)
	}
	proposalsJSON, err := marshalNullable(c.Proposals)
	if err != nil {
		return ports.NewRepositoryError("candidate", "upsert", err)
	}

	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query, args, err := r.builder.
		Insert("candidates").
		Columns(candidateColumns...).
		Values(c.ID, c.FullName, string(c.Cargo), c.PartyID, string(rawJSON),
			c.Resignations, string(docsJSON), incumbentJSON, votingJSON,
			companyJSON, proposalsJSON, updatedAt).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			cargo = excluded.cargo,
			party_id = excluded.party_id,
			raw_json = excluded.raw_json,
			resignations = excluded.resignations,
			docs_json = excluded.docs_json,
			incumbent_json = excluded.incumbent_json,
			voting_json = excluded.voting_json,
			company_json = excluded.company_json,
			proposals_json = excluded.proposals_json,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return ports.NewRepositoryError("candidate", "upsert", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return ports.NewRepositoryError("candidate", "upsert", err)
	}
	return nil
}

// UpdateCategories overwrites the raw category blobs and resignation count
// of one candidate. The union-never-shrink rule is the caller's job.
func (r *SQLiteRepository) UpdateCategories(
	ctx context.Context,
	id string,
	raw domain.RawCategories,
	resignations int,
) error {
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return ports.NewRepositoryError("candidate", "update_categories", err)
	}

	query, args, err := r.builder.
		Update("candidates").
		Set("raw_json", string(rawJSON)).
		Set("resignations", resignations).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return ports.NewRepositoryError("candidate", "update_categories", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return ports.NewRepositoryError("candidate", "update_categories", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ports.NewRepositoryError("candidate", "update_categories",
			fmt.Errorf("candidate %s: %w", id, ports.ErrNotFound))
	}
	return nil
}

// SaveScore overwrites the score and breakdown of one candidate in a
// single transaction. Neither row exists without the other.
func (r *SQLiteRepository) SaveScore(
	ctx context.Context,
	score domain.Score,
	breakdown domain.ScoreBreakdown,
) error {
	civilJSON, err := json.Marshal(breakdown.CivilPenalties)
	if err != nil {
		return ports.NewRepositoryError("score", "save", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return ports.NewRepositoryError("score", "save", err)
	}
	defer tx.Rollback()

	scoreQuery, scoreArgs, err := r.builder.
		Insert("scores").
		Columns("candidate_id", "competence", "integrity", "transparency",
			"confidence", "score_balanced", "score_merit", "score_integrity",
			"computed_at", "run_id").
		Values(score.CandidateID, score.Competence, score.Integrity,
			score.Transparency, score.Confidence, score.Balanced, score.Merit,
			score.IntegrityFirst, score.ComputedAt, score.RunID).
		Suffix(`ON CONFLICT(candidate_id) DO UPDATE SET
			competence = excluded.competence,
			integrity = excluded.integrity,
			transparency = excluded.transparency,
			confidence = excluded.confidence,
			score_balanced = excluded.score_balanced,
			score_merit = excluded.score_merit,
			score_integrity = excluded.score_integrity,
			computed_at = excluded.computed_at,
			run_id = excluded.run_id`).
		ToSql()
	if err != nil {
		return ports.NewRepositoryError("score", "save", err)
	}
	if _, err := tx.ExecContext(ctx, scoreQuery, scoreArgs...); err != nil {
		return ports.NewRepositoryError("score", "save", err)
	}

	breakdownQuery, breakdownArgs, err := r.builder.
		Insert("breakdowns").
		Columns("candidate_id", "integrity_base", "penal_penalty",
			"civil_penalties_json", "resignation_penalty", "reinfo_penalty",
			"company_penalty", "incumbent_penalty", "voting_penalty",
			"voting_bonus").
		Values(breakdown.CandidateID, breakdown.IntegrityBase,
			breakdown.PenalPenalty, string(civilJSON),
			breakdown.ResignationPenalty, breakdown.ReinfoPenalty,
			breakdown.CompanyPenalty, breakdown.IncumbentPenalty,
			breakdown.VotingPenalty, breakdown.VotingBonus).
		Suffix(`ON CONFLICT(candidate_id) DO UPDATE SET
			integrity_base = excluded.integrity_base,
			penal_penalty = excluded.penal_penalty,
			civil_penalties_json = excluded.civil_penalties_json,
			resignation_penalty = excluded.resignation_penalty,
			reinfo_penalty = excluded.reinfo_penalty,
			company_penalty = excluded.company_penalty,
			incumbent_penalty = excluded.incumbent_penalty,
			voting_penalty = excluded.voting_penalty,
			voting_bonus = excluded.voting_bonus`).
		ToSql()
	if err != nil {
		return ports.NewRepositoryError("breakdown", "save", err)
	}
	if _, err := tx.ExecContext(ctx, breakdownQuery, breakdownArgs...); err != nil {
		return ports.NewRepositoryError("breakdown", "save", err)
	}

	if err := tx.Commit(); err != nil {
		return ports.NewRepositoryError("score", "save", err)
	}
	return nil
}

// GetScore returns the persisted score and breakdown of one candidate.
func (r *SQLiteRepository) GetScore(
	ctx context.Context,
	candidateID string,
) (domain.Score, domain.ScoreBreakdown, error) {
	scoreQuery, scoreArgs, err := r.builder.
		Select("candidate_id", "competence", "integrity", "transparency",
			"confidence", "score_balanced", "score_merit", "score_integrity",
			"computed_at", "run_id").
		From("scores").
		Where(sq.Eq{"candidate_id": candidateID}).
		ToSql()
	if err != nil {
		return domain.Score{}, domain.ScoreBreakdown{}, ports.NewRepositoryError("score", "get", err)
	}

	var score domain.Score
	err = r.db.QueryRowContext(ctx, scoreQuery, scoreArgs...).Scan(
		&score.CandidateID, &score.Competence, &score.Integrity,
		&score.Transparency, &score.Confidence, &score.Balanced, &score.Merit,
		&score.IntegrityFirst, &score.ComputedAt, &score.RunID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Score{}, domain.ScoreBreakdown{}, ports.NewRepositoryError("score", "get",
			fmt.Errorf("candidate %s: %w", candidateID, ports.ErrNotFound))
	}
	if err != nil {
		return domain.Score{}, domain.ScoreBreakdown{}, ports.NewRepositoryError("score", "get", err)
	}

	breakdownQuery, breakdownArgs, err := r.builder.
		Select("candidate_id", "integrity_base", "penal_penalty",
			"civil_penalties_json", "resignation_penalty", "reinfo_penalty",
			"company_penalty", "incumbent_penalty", "voting_penalty",
			"voting_bonus").
		From("breakdowns").
		Where(sq.Eq{"candidate_id": candidateID}).
		ToSql()
	if err != nil {
		return domain.Score{}, domain.ScoreBreakdown{}, ports.NewRepositoryError("breakdown", "get", err)
	}

	var breakdown domain.ScoreBreakdown
	var civilJSON string
	err = r.db.QueryRowContext(ctx, breakdownQuery, breakdownArgs...).Scan(
		&breakdown.CandidateID, &breakdown.IntegrityBase,
		&breakdown.PenalPenalty, &civilJSON, &breakdown.ResignationPenalty,
		&breakdown.ReinfoPenalty, &breakdown.CompanyPenalty,
		&breakdown.IncumbentPenalty, &breakdown.VotingPenalty,
		&breakdown.VotingBonus,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Score{}, domain.ScoreBreakdown{}, ports.NewRepositoryError("breakdown", "get",
			fmt.Errorf("candidate %s: %w", candidateID, ports.ErrNotFound))
	}
	if err != nil {
		return domain.Score{}, domain.ScoreBreakdown{}, ports.NewRepositoryError("breakdown", "get", err)
	}
	if err := json.Unmarshal([]byte(civilJSON), &breakdown.CivilPenalties); err != nil {
		return domain.Score{}, domain.ScoreBreakdown{}, ports.NewRepositoryError("breakdown", "get", err)
	}
	return score, breakdown, nil
}

// SaveBaseline stores the pre-penalty snapshot for one candidate.
func (r *SQLiteRepository) SaveBaseline(ctx context.Context, snapshot domain.BaselineSnapshot) error {
	query, args, err := r.builder.
		Insert("baselines").
		Columns("candidate_id", "competence", "integrity", "captured_at", "run_id").
		Values(snapshot.CandidateID, snapshot.Competence, snapshot.Integrity,
			snapshot.CapturedAt, snapshot.RunID).
		Suffix(`ON CONFLICT(candidate_id) DO UPDATE SET
			competence = excluded.competence,
			integrity = excluded.integrity,
			captured_at = excluded.captured_at,
			run_id = excluded.run_id`).
		ToSql()
	if err != nil {
		return ports.NewRepositoryError("baseline", "save", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return ports.NewRepositoryError("baseline", "save", err)
	}
	return nil
}

// GetBaseline returns the snapshot for one candidate; the boolean is false
// when none was captured yet.
func (r *SQLiteRepository) GetBaseline(
	ctx context.Context,
	candidateID string,
) (domain.BaselineSnapshot, bool, error) {
	query, args, err := r.builder.
		Select("candidate_id", "competence", "integrity", "captured_at", "run_id").
		From("baselines").
		Where(sq.Eq{"candidate_id": candidateID}).
		ToSql()
	if err != nil {
		return domain.BaselineSnapshot{}, false, ports.NewRepositoryError("baseline", "get", err)
	}

	var snapshot domain.BaselineSnapshot
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&snapshot.CandidateID, &snapshot.Competence, &snapshot.Integrity,
		&snapshot.CapturedAt, &snapshot.RunID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BaselineSnapshot{}, false, nil
	}
	if err != nil {
		return domain.BaselineSnapshot{}, false, ports.NewRepositoryError("baseline", "get", err)
	}
	return snapshot, true, nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (domain.Candidate, error) {
	var (
		c             domain.Candidate
		cargo         string
		rawJSON       string
		docsJSON      string
		incumbentJSON sql.NullString
		votingJSON    sql.NullString
		companyJSON   sql.NullString
		proposalsJSON sql.NullString
	)
	err := row.Scan(&c.ID, &c.FullName, &cargo, &c.PartyID, &rawJSON,
		&c.Resignations, &docsJSON, &incumbentJSON, &votingJSON, &companyJSON,
		&proposalsJSON, &c.UpdatedAt)
	if err != nil {
		return domain.Candidate{}, err
	}

	c.Cargo = domain.Cargo(cargo)
	if err := json.Unmarshal([]byte(rawJSON), &c.Raw); err != nil {
		return domain.Candidate{}, fmt.Errorf("decode raw categories: %w", err)
	}
	if err := json.Unmarshal([]byte(docsJSON), &c.Docs); err != nil {
		return domain.Candidate{}, fmt.Errorf("decode docs: %w", err)
	}
	if err := unmarshalNullable(incumbentJSON, &c.Incumbent); err != nil {
		return domain.Candidate{}, fmt.Errorf("decode incumbent: %w", err)
	}
	if err := unmarshalNullable(votingJSON, &c.Voting); err != nil {
		return domain.Candidate{}, fmt.Errorf("decode voting: %w", err)
	}
	if err := unmarshalNullable(companyJSON, &c.Company); err != nil {
		return domain.Candidate{}, fmt.Errorf("decode company: %w", err)
	}
	if err := unmarshalNullable(proposalsJSON, &c.Proposals); err != nil {
		return domain.Candidate{}, fmt.Errorf("decode proposals: %w", err)
	}
	return c, nil
}

// marshalNullable serializes an optional struct pointer to a nullable
// column value.
func marshalNullable(v any) (any, error) {
	switch ptr := v.(type) {
	case *domain.IncumbentPerformance:
		if ptr == nil {
			return nil, nil
		}
	case *domain.VotingSummary:
		if ptr == nil {
			return nil, nil
		}
	case *domain.CompanyIssues:
		if ptr == nil {
			return nil, nil
		}
	case *domain.ProposalEvaluation:
		if ptr == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// unmarshalNullable decodes a nullable JSON column into an optional struct
// pointer, leaving it nil for NULL.
func unmarshalNullable[T any](column sql.NullString, out **T) error {
	if !column.Valid || column.String == "" || column.String == "null" {
		*out = nil
		return nil
	}
	value := new(T)
	if err := json.Unmarshal([]byte(column.String), value); err != nil {
		return err
	}
	*out = value
	return nil
}
