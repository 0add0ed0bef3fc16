package profile

import (
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
)

// ProfileStatus represents the status of a candidate profile
type ProfileStatus string

const (
	ProfileStatusActive   ProfileStatus = "ACTIVE"   // Visible to matching
	ProfileStatusInactive ProfileStatus = "INACTIVE" // Deactivated by the candidate
	ProfileStatusArchived ProfileStatus = "ARCHIVED" // Archived
)

// CandidateProfile is the structured output of upstream resume ingestion.
// This package only reads profiles; writes belong to the ingestion service.
type CandidateProfile struct {
	ID                 kernel.CandidateID  `db:"id" json:"id"`
	TechnicalSkills    []string            `db:"technical_skills" json:"technical_skills"`
	SoftSkills         []string            `db:"soft_skills" json:"soft_skills"`
	ExperienceYears    float64             `db:"experience_years" json:"experience_years"`
	JobTypePreferences []kernel.JobType    `db:"job_type_preferences" json:"job_type_preferences"`
	ExpectedSalary     *kernel.SalaryRange `db:"expected_salary" json:"expected_salary,omitempty"`
	PreferredLocations []string            `db:"preferred_locations" json:"preferred_locations"`
	WillingToRelocate  bool                `db:"willing_to_relocate" json:"willing_to_relocate"`
	Status             ProfileStatus       `db:"status" json:"status"`
	CreatedAt          time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time           `db:"updated_at" json:"updated_at"`
}

// IsActive checks if the profile participates in matching
func (p *CandidateProfile) IsActive() bool {
	return p.Status == ProfileStatusActive
}
