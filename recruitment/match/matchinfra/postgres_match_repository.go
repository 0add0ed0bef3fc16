package matchinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/match"
	"github.com/jmoiron/sqlx"
)

// PostgresMatchRepository implements match.Repository using PostgreSQL.
// The matches table carries a UNIQUE (candidate_id, job_id) constraint and a
// version column; every write below is a single conditional statement so the
// uniqueness and optimistic-concurrency invariants hold without read-then-write
// sequences.
type PostgresMatchRepository struct {
	db *sqlx.DB
}

// NewPostgresMatchRepository creates a new PostgreSQL match repository
func NewPostgresMatchRepository(db *sqlx.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type matchModel struct {
	ID                  string    `db:"id"`
	CandidateID         string    `db:"candidate_id"`
	JobID               string    `db:"job_id"`
	Score               int       `db:"match_score"`
	Breakdown           []byte    `db:"score_breakdown"`
	Details             []byte    `db:"match_details"`
	Status              string    `db:"status"`
	CandidateInterested *bool     `db:"candidate_interested"`
	RecruiterNotes      string    `db:"recruiter_notes"`
	Version             int64     `db:"version"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *matchModel) toEntity() (*match.Match, error) {
	var breakdown match.ScoreBreakdown
	if err := json.Unmarshal(m.Breakdown, &breakdown); err != nil {
		return nil, fmt.Errorf("unmarshal breakdown for match %s: %w", m.ID, err)
	}

	var details match.MatchDetails
	if err := json.Unmarshal(m.Details, &details); err != nil {
		return nil, fmt.Errorf("unmarshal details for match %s: %w", m.ID, err)
	}

	return &match.Match{
		ID:                  kernel.MatchID(m.ID),
		CandidateID:         kernel.CandidateID(m.CandidateID),
		JobID:               kernel.JobID(m.JobID),
		Score:               m.Score,
		Breakdown:           breakdown,
		Details:             details,
		Status:              match.MatchStatus(m.Status),
		CandidateInterested: m.CandidateInterested,
		RecruiterNotes:      m.RecruiterNotes,
		Version:             m.Version,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(m *match.Match) (*matchModel, error) {
	breakdown, err := json.Marshal(m.Breakdown)
	if err != nil {
		return nil, fmt.Errorf("marshal breakdown for match %s: %w", m.ID, err)
	}

	details, err := json.Marshal(m.Details)
	if err != nil {
		return nil, fmt.Errorf("marshal details for match %s: %w", m.ID, err)
	}

	return &matchModel{
		ID:                  string(m.ID),
		CandidateID:         string(m.CandidateID),
		JobID:               string(m.JobID),
		Score:               m.Score,
		Breakdown:           breakdown,
		Details:             details,
		Status:              string(m.Status),
		CandidateInterested: m.CandidateInterested,
		RecruiterNotes:      m.RecruiterNotes,
		Version:             m.Version,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

const matchColumns = `
	id, candidate_id, job_id, match_score, score_breakdown, match_details,
	status, candidate_interested, recruiter_notes, version, created_at, updated_at
`

// Upsert creates the match or refreshes its score atomically. The ON CONFLICT
// arm only touches the scoring columns, so status, candidate_interested and
// recruiter_notes survive every rescore. Concurrent upserts for the same pair
// serialize on the unique index inside Postgres.
func (r *PostgresMatchRepository) Upsert(ctx context.Context, m *match.Match) (*match.Match, error) {
	model, err := fromEntity(m)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO matches (
			id, candidate_id, job_id, match_score, score_breakdown, match_details,
			status, candidate_interested, recruiter_notes, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11)
		ON CONFLICT (candidate_id, job_id) DO UPDATE SET
			match_score     = EXCLUDED.match_score,
			score_breakdown = EXCLUDED.score_breakdown,
			match_details   = EXCLUDED.match_details,
			version         = matches.version + 1,
			updated_at      = EXCLUDED.updated_at
		RETURNING ` + matchColumns

	var stored matchModel
	err = r.db.QueryRowxContext(ctx, query,
		model.ID, model.CandidateID, model.JobID, model.Score,
		model.Breakdown, model.Details, model.Status,
		model.CandidateInterested, model.RecruiterNotes,
		model.CreatedAt, model.UpdatedAt,
	).StructScan(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert match: %w", err)
	}

	return stored.toEntity()
}

// GetByPair retrieves the match for a candidate/job pair
func (r *PostgresMatchRepository) GetByPair(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*match.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE candidate_id = $1 AND job_id = $2`

	var model matchModel
	err := r.db.GetContext(ctx, &model, query, string(candidateID), string(jobID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, match.ErrMatchNotFound().
				WithDetail("candidate_id", candidateID.String()).
				WithDetail("job_id", jobID.String())
		}
		return nil, fmt.Errorf("failed to get match by pair: %w", err)
	}

	return model.toEntity()
}

// GetByID retrieves a match by record ID
func (r *PostgresMatchRepository) GetByID(ctx context.Context, id kernel.MatchID) (*match.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	var model matchModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, match.ErrMatchNotFound().WithDetail("match_id", id.String())
		}
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	return model.toEntity()
}

// ListByCandidate retrieves a candidate's matches, best first
func (r *PostgresMatchRepository) ListByCandidate(ctx context.Context, candidateID kernel.CandidateID, minScore *int, pagination kernel.PaginationOptions) (*kernel.Paginated[match.Match], error) {
	return r.list(ctx, "candidate_id", string(candidateID), minScore, pagination)
}

// ListByJob retrieves a posting's matches, best first
func (r *PostgresMatchRepository) ListByJob(ctx context.Context, jobID kernel.JobID, minScore *int, pagination kernel.PaginationOptions) (*kernel.Paginated[match.Match], error) {
	return r.list(ctx, "job_id", string(jobID), minScore, pagination)
}

// list implements the shared listing contract: descending match_score, ties
// broken by most recent updated_at. keyColumn is one of the two indexed
// identity columns, never caller input.
func (r *PostgresMatchRepository) list(ctx context.Context, keyColumn, keyValue string, minScore *int, pagination kernel.PaginationOptions) (*kernel.Paginated[match.Match], error) {
	countQuery := fmt.Sprintf(
		`SELECT COUNT(*) FROM matches WHERE %s = $1 AND ($2::int IS NULL OR match_score >= $2)`,
		keyColumn,
	)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, keyValue, minScore); err != nil {
		return nil, fmt.Errorf("failed to count matches: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := fmt.Sprintf(`
		SELECT `+matchColumns+`
		FROM matches
		WHERE %s = $1 AND ($2::int IS NULL OR match_score >= $2)
		ORDER BY match_score DESC, updated_at DESC
		LIMIT $3 OFFSET $4
	`, keyColumn)

	var models []matchModel
	if err := r.db.SelectContext(ctx, &models, query, keyValue, minScore, pagination.PageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	entities := make([]match.Match, 0, len(models))
	for i := range models {
		entity, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return &kernel.Paginated[match.Match]{
		Items: entities,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(entities) == 0,
	}, nil
}

// UpdateStatus writes a new status iff the stored version still matches.
// RETURNING hands back the row exactly as stored, so callers never see a
// locally computed timestamp that differs from the database's.
func (r *PostgresMatchRepository) UpdateStatus(ctx context.Context, id kernel.MatchID, status match.MatchStatus, version int64) (*match.Match, error) {
	query := `
		UPDATE matches
		SET status = $1,
		    version = version + 1,
		    updated_at = $2
		WHERE id = $3 AND version = $4
		RETURNING ` + matchColumns

	var stored matchModel
	err := r.db.QueryRowxContext(ctx, query, string(status), time.Now(), string(id), version).StructScan(&stored)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, r.resolveMissedWrite(ctx, id)
		}
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}

	return stored.toEntity()
}

// SetCandidateInterest writes the interest flag under the CAS discipline
func (r *PostgresMatchRepository) SetCandidateInterest(ctx context.Context, id kernel.MatchID, interested bool, version int64) (*match.Match, error) {
	query := `
		UPDATE matches
		SET candidate_interested = $1,
		    version = version + 1,
		    updated_at = $2
		WHERE id = $3 AND version = $4
		RETURNING ` + matchColumns

	var stored matchModel
	err := r.db.QueryRowxContext(ctx, query, interested, time.Now(), string(id), version).StructScan(&stored)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, r.resolveMissedWrite(ctx, id)
		}
		return nil, fmt.Errorf("failed to set candidate interest: %w", err)
	}

	return stored.toEntity()
}

// UpdateRecruiterNotes writes recruiter notes under the CAS discipline
func (r *PostgresMatchRepository) UpdateRecruiterNotes(ctx context.Context, id kernel.MatchID, notes string, version int64) (*match.Match, error) {
	query := `
		UPDATE matches
		SET recruiter_notes = $1,
		    version = version + 1,
		    updated_at = $2
		WHERE id = $3 AND version = $4
		RETURNING ` + matchColumns

	var stored matchModel
	err := r.db.QueryRowxContext(ctx, query, notes, time.Now(), string(id), version).StructScan(&stored)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, r.resolveMissedWrite(ctx, id)
		}
		return nil, fmt.Errorf("failed to update recruiter notes: %w", err)
	}

	return stored.toEntity()
}

// resolveMissedWrite distinguishes "record gone" from "version stale" when a
// conditional update matched no rows.
func (r *PostgresMatchRepository) resolveMissedWrite(ctx context.Context, id kernel.MatchID) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM matches WHERE id = $1)`, string(id)); err != nil {
		return fmt.Errorf("failed to check match existence: %w", err)
	}
	if !exists {
		return match.ErrMatchNotFound().WithDetail("match_id", id.String())
	}

	return match.ErrConcurrencyConflict().WithDetail("match_id", id.String())
}

// GetCandidateStats returns per-status counts and the best score for a candidate
func (r *PostgresMatchRepository) GetCandidateStats(ctx context.Context, candidateID kernel.CandidateID) (*match.CandidateMatchStatsResponse, error) {
	query := `
		SELECT status, COUNT(*) AS count, MAX(match_score) AS best
		FROM matches
		WHERE candidate_id = $1
		GROUP BY status
	`

	rows := []struct {
		Status string `db:"status"`
		Count  int64  `db:"count"`
		Best   int    `db:"best"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, string(candidateID)); err != nil {
		return nil, fmt.Errorf("failed to get candidate stats: %w", err)
	}

	stats := &match.CandidateMatchStatsResponse{
		CandidateID: candidateID,
		ByStatus:    make(map[match.MatchStatus]int64),
	}
	for _, row := range rows {
		stats.Total += row.Count
		stats.ByStatus[match.MatchStatus(row.Status)] = row.Count
		if stats.BestScore == nil || row.Best > *stats.BestScore {
			best := row.Best
			stats.BestScore = &best
		}
	}

	return stats, nil
}
