package profile

import (
	"net/http"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("PROFILE")

// Error codes
var (
	CodeProfileNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate profile not found")
)

// Helper functions
func ErrProfileNotFound() *errx.Error {
	return ErrRegistry.New(CodeProfileNotFound)
}
