package matchapi

import (
	"strconv"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/match"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/match/matchsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for match operations
type Handlers struct {
	service *matchsrv.MatchService
}

// NewHandlers creates a new match handlers instance
func NewHandlers(service *matchsrv.MatchService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetMatch retrieves the match for a candidate/job pair
// GET /api/matches/:candidateId/:jobId
func (h *Handlers) GetMatch(c *fiber.Ctx) error {
	candidateID, jobID, err := parsePair(c)
	if err != nil {
		return err
	}

	m, err := h.service.GetMatch(c.Context(), candidateID, jobID)
	if err != nil {
		return err
	}

	return c.JSON(m)
}

// ScorePair scores a pair on demand, creating or refreshing the match record
// POST /api/matches/:candidateId/:jobId/score
func (h *Handlers) ScorePair(c *fiber.Ctx) error {
	candidateID, jobID, err := parsePair(c)
	if err != nil {
		return err
	}

	m, err := h.service.ScorePair(c.Context(), candidateID, jobID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(m)
}

// ListMatchesForCandidate retrieves a candidate's matches, best first
// GET /api/matches/by-candidate/:candidateId?min_score=70
func (h *Handlers) ListMatchesForCandidate(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("candidateId"))
	if candidateID.IsEmpty() {
		return match.ErrInvalidRequest().WithDetail("candidate_id", "missing or empty")
	}

	minScore, err := parseMinScore(c)
	if err != nil {
		return err
	}

	matches, err := h.service.ListMatchesForCandidate(c.Context(), candidateID, minScore, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(matches)
}

// ListMatchesForJob retrieves a posting's matches, best first
// GET /api/matches/by-job/:jobId?min_score=70
func (h *Handlers) ListMatchesForJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return match.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	minScore, err := parseMinScore(c)
	if err != nil {
		return err
	}

	matches, err := h.service.ListMatchesForJob(c.Context(), jobID, minScore, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(matches)
}

// GetCandidateMatchStats summarizes a candidate's funnel
// GET /api/matches/by-candidate/:candidateId/stats
func (h *Handlers) GetCandidateMatchStats(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("candidateId"))
	if candidateID.IsEmpty() {
		return match.ErrInvalidRequest().WithDetail("candidate_id", "missing or empty")
	}

	stats, err := h.service.GetCandidateMatchStats(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// ApplyTransition advances the match lifecycle
// PATCH /api/matches/:candidateId/:jobId/status
func (h *Handlers) ApplyTransition(c *fiber.Ctx) error {
	candidateID, jobID, err := parsePair(c)
	if err != nil {
		return err
	}

	var req match.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return match.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	status, err := match.ParseMatchStatus(req.Status)
	if err != nil {
		return err
	}

	m, err := h.service.ApplyTransition(c.Context(), candidateID, jobID, status)
	if err != nil {
		return err
	}

	return c.JSON(m)
}

// SetCandidateInterest records the candidate's interest flag
// PATCH /api/matches/:candidateId/:jobId/interest
func (h *Handlers) SetCandidateInterest(c *fiber.Ctx) error {
	candidateID, jobID, err := parsePair(c)
	if err != nil {
		return err
	}

	var req match.InterestRequest
	if err := c.BodyParser(&req); err != nil {
		return match.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	if req.Interested == nil {
		return match.ErrInvalidRequest().WithDetail("interested", "missing or empty")
	}

	m, err := h.service.SetCandidateInterest(c.Context(), candidateID, jobID, *req.Interested)
	if err != nil {
		return err
	}

	return c.JSON(m)
}

// UpdateRecruiterNotes replaces the recruiter notes on a match
// PATCH /api/matches/:candidateId/:jobId/notes
func (h *Handlers) UpdateRecruiterNotes(c *fiber.Ctx) error {
	candidateID, jobID, err := parsePair(c)
	if err != nil {
		return err
	}

	var req match.NotesRequest
	if err := c.BodyParser(&req); err != nil {
		return match.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	m, err := h.service.UpdateRecruiterNotes(c.Context(), candidateID, jobID, req.Notes)
	if err != nil {
		return err
	}

	return c.JSON(m)
}

// EnqueueRescoreCandidate queues a "candidate profile changed" signal
// POST /api/rescore/candidates/:candidateId
func (h *Handlers) EnqueueRescoreCandidate(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("candidateId"))
	if candidateID.IsEmpty() {
		return match.ErrInvalidRequest().WithDetail("candidate_id", "missing or empty")
	}

	resp, err := h.service.EnqueueRescoreCandidate(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(resp)
}

// EnqueueRescoreJob queues a "job posting changed" signal
// POST /api/rescore/jobs/:jobId
func (h *Handlers) EnqueueRescoreJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return match.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	resp, err := h.service.EnqueueRescoreJob(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(resp)
}

// GetQueueStats returns rescore queue depth statistics
// GET /api/rescore/queue/stats
func (h *Handlers) GetQueueStats(c *fiber.Ctx) error {
	stats, err := h.service.GetQueueStats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// ============================================================================
// Helpers
// ============================================================================

func parsePair(c *fiber.Ctx) (kernel.CandidateID, kernel.JobID, error) {
	candidateID := kernel.CandidateID(c.Params("candidateId"))
	if candidateID.IsEmpty() {
		return "", "", match.ErrInvalidRequest().WithDetail("candidate_id", "missing or empty")
	}

	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return "", "", match.ErrInvalidRequest().WithDetail("job_id", "missing or empty")
	}

	return candidateID, jobID, nil
}

func parseMinScore(c *fiber.Ctx) (*int, error) {
	raw := c.Query("min_score")
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, match.ErrInvalidScoreFilter().WithDetail("min_score", raw)
	}

	return &value, nil
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	// Ensure valid values
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers all match routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	matches := app.Group("/api/matches")

	matches.Get("/by-candidate/:candidateId", handlers.ListMatchesForCandidate)
	matches.Get("/by-candidate/:candidateId/stats", handlers.GetCandidateMatchStats)
	matches.Get("/by-job/:jobId", handlers.ListMatchesForJob)
	matches.Get("/:candidateId/:jobId", handlers.GetMatch)
	matches.Post("/:candidateId/:jobId/score", handlers.ScorePair)
	matches.Patch("/:candidateId/:jobId/status", handlers.ApplyTransition)
	matches.Patch("/:candidateId/:jobId/interest", handlers.SetCandidateInterest)
	matches.Patch("/:candidateId/:jobId/notes", handlers.UpdateRecruiterNotes)

	rescore := app.Group("/api/rescore")

	rescore.Post("/candidates/:candidateId", handlers.EnqueueRescoreCandidate)
	rescore.Post("/jobs/:jobId", handlers.EnqueueRescoreJob)
	rescore.Get("/queue/stats", handlers.GetQueueStats)
}
