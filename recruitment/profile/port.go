package profile

import (
	"context"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
)

type Repository interface {
	// GetByID retrieves a candidate profile by ID
	GetByID(ctx context.Context, id kernel.CandidateID) (*CandidateProfile, error)

	// ListActive retrieves all active candidate profiles
	ListActive(ctx context.Context) ([]CandidateProfile, error)

	// Exists checks if a profile exists by ID
	Exists(ctx context.Context, id kernel.CandidateID) (bool, error)
}
