package profileinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/profile"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresProfileRepository implements profile.Repository using PostgreSQL.
// It is strictly read-only: the ingestion service owns the table.
type PostgresProfileRepository struct {
	db *sqlx.DB
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository
func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type profileModel struct {
	ID                 string         `db:"id"`
	TechnicalSkills    pq.StringArray `db:"technical_skills"`
	SoftSkills         pq.StringArray `db:"soft_skills"`
	ExperienceYears    float64        `db:"experience_years"`
	JobTypePreferences pq.StringArray `db:"job_type_preferences"`
	ExpectedSalary     []byte         `db:"expected_salary"`
	PreferredLocations pq.StringArray `db:"preferred_locations"`
	WillingToRelocate  bool           `db:"willing_to_relocate"`
	Status             string         `db:"status"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// toEntity converts database model to domain entity
func (m *profileModel) toEntity() (*profile.CandidateProfile, error) {
	var salary *kernel.SalaryRange
	if len(m.ExpectedSalary) > 0 {
		salary = &kernel.SalaryRange{}
		if err := json.Unmarshal(m.ExpectedSalary, salary); err != nil {
			return nil, fmt.Errorf("unmarshal expected salary for profile %s: %w", m.ID, err)
		}
	}

	prefs := make([]kernel.JobType, 0, len(m.JobTypePreferences))
	for _, p := range m.JobTypePreferences {
		prefs = append(prefs, kernel.JobType(p))
	}

	return &profile.CandidateProfile{
		ID:                 kernel.CandidateID(m.ID),
		TechnicalSkills:    []string(m.TechnicalSkills),
		SoftSkills:         []string(m.SoftSkills),
		ExperienceYears:    m.ExperienceYears,
		JobTypePreferences: prefs,
		ExpectedSalary:     salary,
		PreferredLocations: []string(m.PreferredLocations),
		WillingToRelocate:  m.WillingToRelocate,
		Status:             profile.ProfileStatus(m.Status),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

const profileColumns = `
	id, technical_skills, soft_skills, experience_years, job_type_preferences,
	expected_salary, preferred_locations, willing_to_relocate, status,
	created_at, updated_at
`

// GetByID retrieves a candidate profile by ID
func (r *PostgresProfileRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*profile.CandidateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM candidate_profiles WHERE id = $1`

	var model profileModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrProfileNotFound().WithDetail("candidate_id", id.String())
		}
		return nil, fmt.Errorf("failed to get profile by id: %w", err)
	}

	return model.toEntity()
}

// ListActive retrieves all active candidate profiles
func (r *PostgresProfileRepository) ListActive(ctx context.Context) ([]profile.CandidateProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM candidate_profiles WHERE status = 'ACTIVE' ORDER BY updated_at DESC`

	var models []profileModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list active profiles: %w", err)
	}

	entities := make([]profile.CandidateProfile, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return entities, nil
}

// Exists checks if a profile exists by ID
func (r *PostgresProfileRepository) Exists(ctx context.Context, id kernel.CandidateID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM candidate_profiles WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, string(id)); err != nil {
		return false, fmt.Errorf("failed to check profile existence: %w", err)
	}

	return exists, nil
}
