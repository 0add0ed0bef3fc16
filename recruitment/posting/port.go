package posting

import (
	"context"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
)

type Repository interface {
	// GetByID retrieves a job posting by ID
	GetByID(ctx context.Context, id kernel.JobID) (*JobPosting, error)

	// ListPublished retrieves all published job postings
	ListPublished(ctx context.Context) ([]JobPosting, error)

	// Exists checks if a posting exists by ID
	Exists(ctx context.Context, id kernel.JobID) (bool, error)
}
