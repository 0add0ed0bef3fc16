package posting

import (
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
)

// PostingStatus represents the status of a job posting
type PostingStatus string

const (
	PostingStatusDraft     PostingStatus = "DRAFT"     // Created but not published
	PostingStatusPublished PostingStatus = "PUBLISHED" // Active and eligible for matching
	PostingStatusClosed    PostingStatus = "CLOSED"    // No longer accepting candidates
	PostingStatusArchived  PostingStatus = "ARCHIVED"  // Archived
)

// JobPosting is the posting as published by the job CRUD/import services.
// This package only reads postings; writes belong to those services.
type JobPosting struct {
	ID             kernel.JobID        `db:"id" json:"id"`
	Title          kernel.JobTitle     `db:"job_title" json:"job_title"`
	RequiredSkills []string            `db:"required_skills" json:"required_skills"`
	SoftSkills     []string            `db:"soft_skills" json:"soft_skills"`
	ExperienceMin  *float64            `db:"experience_min" json:"experience_min,omitempty"`
	ExperienceMax  *float64            `db:"experience_max" json:"experience_max,omitempty"`
	Salary         *kernel.SalaryRange `db:"salary" json:"salary,omitempty"`
	Type           kernel.JobType      `db:"job_type" json:"job_type"`
	Location       kernel.Location     `db:"location" json:"location"`
	Status         PostingStatus       `db:"status" json:"status"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at" json:"updated_at"`
}

// IsPublished checks if the posting participates in matching
func (j *JobPosting) IsPublished() bool {
	return j.Status == PostingStatusPublished
}
