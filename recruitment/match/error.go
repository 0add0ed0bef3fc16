package match

import (
	"net/http"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("MATCH")

// Error codes
var (
	CodeMatchNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Match not found")
	CodeInvalidTransition   = ErrRegistry.Register("INVALID_TRANSITION", errx.TypeBusiness, http.StatusBadRequest, "Invalid status transition")
	CodeUnknownStatus       = ErrRegistry.Register("UNKNOWN_STATUS", errx.TypeValidation, http.StatusBadRequest, "Unknown match status")
	CodeMatchTerminal       = ErrRegistry.Register("TERMINAL_STATE", errx.TypeBusiness, http.StatusConflict, "Match is in a terminal state")
	CodeConcurrencyConflict = ErrRegistry.Register("CONCURRENCY_CONFLICT", errx.TypeConflict, http.StatusConflict, "Concurrent update lost the optimistic-concurrency race")
	CodeInvalidRequest      = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
	CodeInvalidScoreFilter  = ErrRegistry.Register("INVALID_SCORE_FILTER", errx.TypeValidation, http.StatusBadRequest, "min_score must be between 0 and 100")
	CodeRescoreFailed       = ErrRegistry.Register("RESCORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Rescoring failed")
	CodeQueueEnqueueFailed  = ErrRegistry.Register("QUEUE_ENQUEUE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to enqueue rescore signal")
)

// Helper functions
func ErrMatchNotFound() *errx.Error {
	return ErrRegistry.New(CodeMatchNotFound)
}

func ErrInvalidTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidTransition)
}

func ErrUnknownStatus() *errx.Error {
	return ErrRegistry.New(CodeUnknownStatus)
}

func ErrMatchTerminal() *errx.Error {
	return ErrRegistry.New(CodeMatchTerminal)
}

func ErrConcurrencyConflict() *errx.Error {
	return ErrRegistry.New(CodeConcurrencyConflict)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrInvalidScoreFilter() *errx.Error {
	return ErrRegistry.New(CodeInvalidScoreFilter)
}

func ErrRescoreFailed() *errx.Error {
	return ErrRegistry.New(CodeRescoreFailed)
}

func ErrQueueEnqueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueEnqueueFailed)
}
