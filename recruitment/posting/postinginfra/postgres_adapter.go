package postinginfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/posting"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresPostingRepository implements posting.Repository using PostgreSQL.
// Read-only: the job CRUD and import services own the table.
type PostgresPostingRepository struct {
	db *sqlx.DB
}

// NewPostgresPostingRepository creates a new PostgreSQL posting repository
func NewPostgresPostingRepository(db *sqlx.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type postingModel struct {
	ID             string         `db:"id"`
	Title          string         `db:"job_title"`
	RequiredSkills pq.StringArray `db:"required_skills"`
	SoftSkills     pq.StringArray `db:"soft_skills"`
	ExperienceMin  *float64       `db:"experience_min"`
	ExperienceMax  *float64       `db:"experience_max"`
	Salary         []byte         `db:"salary"`
	Type           string         `db:"job_type"`
	LocationCity   string         `db:"location_city"`
	LocationState  string         `db:"location_state"`
	LocationCtry   string         `db:"location_country"`
	Remote         bool           `db:"remote"`
	Status         string         `db:"status"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *postingModel) toEntity() (*posting.JobPosting, error) {
	var salary *kernel.SalaryRange
	if len(m.Salary) > 0 {
		salary = &kernel.SalaryRange{}
		if err := json.Unmarshal(m.Salary, salary); err != nil {
			return nil, fmt.Errorf("unmarshal salary for posting %s: %w", m.ID, err)
		}
	}

	return &posting.JobPosting{
		ID:             kernel.JobID(m.ID),
		Title:          kernel.JobTitle(m.Title),
		RequiredSkills: []string(m.RequiredSkills),
		SoftSkills:     []string(m.SoftSkills),
		ExperienceMin:  m.ExperienceMin,
		ExperienceMax:  m.ExperienceMax,
		Salary:         salary,
		Type:           kernel.JobType(m.Type),
		Location: kernel.Location{
			City:    m.LocationCity,
			State:   m.LocationState,
			Country: m.LocationCtry,
			Remote:  m.Remote,
		},
		Status:    posting.PostingStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

const postingColumns = `
	id, job_title, required_skills, soft_skills, experience_min, experience_max,
	salary, job_type, location_city, location_state, location_country, remote,
	status, created_at, updated_at
`

// GetByID retrieves a job posting by ID
func (r *PostgresPostingRepository) GetByID(ctx context.Context, id kernel.JobID) (*posting.JobPosting, error) {
	query := `SELECT ` + postingColumns + ` FROM job_postings WHERE id = $1`

	var model postingModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, posting.ErrPostingNotFound().WithDetail("job_id", id.String())
		}
		return nil, fmt.Errorf("failed to get posting by id: %w", err)
	}

	return model.toEntity()
}

// ListPublished retrieves all published job postings
func (r *PostgresPostingRepository) ListPublished(ctx context.Context) ([]posting.JobPosting, error) {
	query := `SELECT ` + postingColumns + ` FROM job_postings WHERE status = 'PUBLISHED' ORDER BY updated_at DESC`

	var models []postingModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list published postings: %w", err)
	}

	entities := make([]posting.JobPosting, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return entities, nil
}

// Exists checks if a posting exists by ID
func (r *PostgresPostingRepository) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM job_postings WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, string(id)); err != nil {
		return false, fmt.Errorf("failed to check posting existence: %w", err)
	}

	return exists, nil
}
