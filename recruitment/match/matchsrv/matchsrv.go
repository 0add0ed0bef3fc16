package matchsrv

import (
	"context"
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/errx"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/logx"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/match"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/posting"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/profile"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// maxWriteAttempts bounds the internal retry loop for CAS writes before
	// the conflict is surfaced to the caller.
	maxWriteAttempts = 3

	// defaultRescoreParallelism caps concurrent pair scoring in a batch
	// rescore fan-out.
	defaultRescoreParallelism = 8
)

// MatchService provides the matching engine's business operations
type MatchService struct {
	matchRepo   match.Repository
	profileRepo profile.Repository
	postingRepo posting.Repository
	queue       match.RescoreQueue
	parallelism int
}

// NewMatchService creates a new instance of the match service
func NewMatchService(
	matchRepo match.Repository,
	profileRepo profile.Repository,
	postingRepo posting.Repository,
	queue match.RescoreQueue,
) *MatchService {
	return &MatchService{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		postingRepo: postingRepo,
		queue:       queue,
		parallelism: defaultRescoreParallelism,
	}
}

// ============================================================================
// Scoring
// ============================================================================

// ScorePair scores one candidate against one posting and upserts the match
// record. Creating and rescoring go through the same path: the repository's
// atomic upsert keeps exactly one record per pair and preserves status,
// candidate interest and recruiter notes across rescores.
func (s *MatchService) ScorePair(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*match.Match, error) {
	p, err := s.profileRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	j, err := s.postingRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return s.scoreAndStore(ctx, p, j)
}

func (s *MatchService) scoreAndStore(ctx context.Context, p *profile.CandidateProfile, j *posting.JobPosting) (*match.Match, error) {
	result := match.Score(p, j)

	now := time.Now()
	rec := &match.Match{
		ID:          kernel.NewMatchID(uuid.NewString()),
		CandidateID: p.ID,
		JobID:       j.ID,
		Score:       result.Score,
		Breakdown:   result.Breakdown,
		Details:     result.Details,
		Status:      match.MatchStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := s.matchRepo.Upsert(ctx, rec)
	if err != nil {
		return nil, errx.Wrap(err, "failed to upsert match", errx.TypeInternal)
	}

	return stored, nil
}

// RescoreCandidate rescores the candidate against every published posting.
// Pair computations fan out in parallel; each write goes through the
// per-pair atomic upsert, so concurrent triggers cannot lose updates.
func (s *MatchService) RescoreCandidate(ctx context.Context, candidateID kernel.CandidateID) (*match.RescoreReport, error) {
	p, err := s.profileRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	postings, err := s.postingRepo.ListPublished(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list published postings", errx.TypeInternal)
	}

	report := &match.RescoreReport{Kind: match.RescoreKindCandidate, Pairs: len(postings)}
	results := make([]error, len(postings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i := range postings {
		i := i
		g.Go(func() error {
			_, err := s.scoreAndStore(gctx, p, &postings[i])
			results[i] = err
			return nil // individual pair failures are tallied, not fatal
		})
	}
	_ = g.Wait()

	for i, err := range results {
		if err != nil {
			report.Failed++
			logx.Errorf("Rescore pair (%s, %s) failed: %v", candidateID, postings[i].ID, err)
		} else {
			report.Scored++
		}
	}

	logx.Infof("Rescored candidate %s: %d scored, %d failed", candidateID, report.Scored, report.Failed)
	return report, nil
}

// RescoreJob rescores every active candidate profile against the posting.
func (s *MatchService) RescoreJob(ctx context.Context, jobID kernel.JobID) (*match.RescoreReport, error) {
	j, err := s.postingRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.ListActive(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list active profiles", errx.TypeInternal)
	}

	report := &match.RescoreReport{Kind: match.RescoreKindJob, Pairs: len(profiles)}
	results := make([]error, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i := range profiles {
		i := i
		g.Go(func() error {
			_, err := s.scoreAndStore(gctx, &profiles[i], j)
			results[i] = err
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range results {
		if err != nil {
			report.Failed++
			logx.Errorf("Rescore pair (%s, %s) failed: %v", profiles[i].ID, jobID, err)
		} else {
			report.Scored++
		}
	}

	logx.Infof("Rescored job %s: %d scored, %d failed", jobID, report.Scored, report.Failed)
	return report, nil
}

// ============================================================================
// Trigger enqueueing
// ============================================================================

// EnqueueRescoreCandidate queues a "candidate profile changed" signal
func (s *MatchService) EnqueueRescoreCandidate(ctx context.Context, candidateID kernel.CandidateID) (*match.RescoreQueuedResponse, error) {
	exists, err := s.profileRepo.Exists(ctx, candidateID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to validate profile existence", errx.TypeInternal)
	}
	if !exists {
		return nil, profile.ErrProfileNotFound().WithDetail("candidate_id", candidateID.String())
	}

	signal := &match.RescoreSignal{
		ID:          uuid.NewString(),
		Kind:        match.RescoreKindCandidate,
		CandidateID: candidateID,
		EnqueuedAt:  time.Now(),
	}
	if err := s.queue.Enqueue(ctx, signal); err != nil {
		return nil, match.ErrQueueEnqueueFailed().
			WithDetail("candidate_id", candidateID.String()).
			WithDetail("error", err.Error())
	}

	return &match.RescoreQueuedResponse{
		SignalID:   signal.ID,
		Kind:       signal.Kind,
		EnqueuedAt: signal.EnqueuedAt,
	}, nil
}

// EnqueueRescoreJob queues a "job posting changed" signal
func (s *MatchService) EnqueueRescoreJob(ctx context.Context, jobID kernel.JobID) (*match.RescoreQueuedResponse, error) {
	exists, err := s.postingRepo.Exists(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to validate posting existence", errx.TypeInternal)
	}
	if !exists {
		return nil, posting.ErrPostingNotFound().WithDetail("job_id", jobID.String())
	}

	signal := &match.RescoreSignal{
		ID:         uuid.NewString(),
		Kind:       match.RescoreKindJob,
		JobID:      jobID,
		EnqueuedAt: time.Now(),
	}
	if err := s.queue.Enqueue(ctx, signal); err != nil {
		return nil, match.ErrQueueEnqueueFailed().
			WithDetail("job_id", jobID.String()).
			WithDetail("error", err.Error())
	}

	return &match.RescoreQueuedResponse{
		SignalID:   signal.ID,
		Kind:       signal.Kind,
		EnqueuedAt: signal.EnqueuedAt,
	}, nil
}

// GetQueueStats returns rescore queue depth statistics
func (s *MatchService) GetQueueStats(ctx context.Context) (map[string]any, error) {
	stats, err := s.queue.Stats(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "failed to read queue stats", errx.TypeExternal)
	}
	return stats, nil
}

// ============================================================================
// Reads
// ============================================================================

// GetMatch retrieves the match record for a candidate/job pair
func (s *MatchService) GetMatch(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*match.MatchResponse, error) {
	m, err := s.matchRepo.GetByPair(ctx, candidateID, jobID)
	if err != nil {
		return nil, err
	}
	return toMatchResponse(m), nil
}

// ListMatchesForCandidate lists a candidate's matches, best first
func (s *MatchService) ListMatchesForCandidate(ctx context.Context, candidateID kernel.CandidateID, minScore *int, pagination kernel.PaginationOptions) (*match.PaginatedMatchesResponse, error) {
	if err := validateMinScore(minScore); err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListByCandidate(ctx, candidateID, minScore, normalizePagination(pagination))
	if err != nil {
		return nil, errx.Wrap(err, "failed to list matches by candidate", errx.TypeInternal)
	}

	return toPaginatedResponse(matches), nil
}

// ListMatchesForJob lists a posting's matches, best first
func (s *MatchService) ListMatchesForJob(ctx context.Context, jobID kernel.JobID, minScore *int, pagination kernel.PaginationOptions) (*match.PaginatedMatchesResponse, error) {
	if err := validateMinScore(minScore); err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListByJob(ctx, jobID, minScore, normalizePagination(pagination))
	if err != nil {
		return nil, errx.Wrap(err, "failed to list matches by job", errx.TypeInternal)
	}

	return toPaginatedResponse(matches), nil
}

// GetCandidateMatchStats summarizes a candidate's funnel
func (s *MatchService) GetCandidateMatchStats(ctx context.Context, candidateID kernel.CandidateID) (*match.CandidateMatchStatsResponse, error) {
	stats, err := s.matchRepo.GetCandidateStats(ctx, candidateID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get candidate match stats", errx.TypeInternal)
	}
	return stats, nil
}

// ============================================================================
// Lifecycle
// ============================================================================

// ApplyTransition advances the match's lifecycle status. The write is a
// compare-and-swap on the record version; a lost race is retried against the
// re-fetched record a bounded number of times before the conflict surfaces.
func (s *MatchService) ApplyTransition(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID, newStatus match.MatchStatus) (*match.MatchResponse, error) {
	var lastErr error

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		m, err := s.matchRepo.GetByPair(ctx, candidateID, jobID)
		if err != nil {
			return nil, err
		}

		if err := m.TransitionTo(newStatus); err != nil {
			// Not a race: the lifecycle forbids this move, retrying won't help.
			return nil, err
		}

		stored, err := s.matchRepo.UpdateStatus(ctx, m.ID, newStatus, m.Version)
		if err == nil {
			return toMatchResponse(stored), nil
		}
		if !errx.IsCode(err, match.CodeConcurrencyConflict) {
			return nil, err
		}

		lastErr = err
		logx.Warnf("Status transition for match %s lost CAS race (attempt %d/%d)", m.ID, attempt+1, maxWriteAttempts)
	}

	return nil, exhaustedConflict(lastErr, "status transition", candidateID, jobID)
}

// SetCandidateInterest records the candidate's interest flag without moving status
func (s *MatchService) SetCandidateInterest(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID, interested bool) (*match.MatchResponse, error) {
	var lastErr error

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		m, err := s.matchRepo.GetByPair(ctx, candidateID, jobID)
		if err != nil {
			return nil, err
		}

		if err := m.SetCandidateInterest(interested); err != nil {
			return nil, err
		}

		stored, err := s.matchRepo.SetCandidateInterest(ctx, m.ID, interested, m.Version)
		if err == nil {
			return toMatchResponse(stored), nil
		}
		if !errx.IsCode(err, match.CodeConcurrencyConflict) {
			return nil, err
		}
		lastErr = err
	}

	return nil, exhaustedConflict(lastErr, "interest update", candidateID, jobID)
}

// UpdateRecruiterNotes replaces the recruiter notes on a match
func (s *MatchService) UpdateRecruiterNotes(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID, notes string) (*match.MatchResponse, error) {
	var lastErr error

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		m, err := s.matchRepo.GetByPair(ctx, candidateID, jobID)
		if err != nil {
			return nil, err
		}

		stored, err := s.matchRepo.UpdateRecruiterNotes(ctx, m.ID, notes, m.Version)
		if err == nil {
			return toMatchResponse(stored), nil
		}
		if !errx.IsCode(err, match.CodeConcurrencyConflict) {
			return nil, err
		}
		lastErr = err
	}

	return nil, exhaustedConflict(lastErr, "notes update", candidateID, jobID)
}

// ============================================================================
// Helper Methods
// ============================================================================

func validateMinScore(minScore *int) error {
	if minScore != nil && (*minScore < 0 || *minScore > 100) {
		return match.ErrInvalidScoreFilter().WithDetail("min_score", *minScore)
	}
	return nil
}

// normalizePagination floors degenerate page requests to defaults. The HTTP
// layer clamps its own input, but this service is also an in-process contract
// and a zero-value PaginationOptions must not reach the repository's paging
// math.
func normalizePagination(p kernel.PaginationOptions) kernel.PaginationOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
	return p
}

// exhaustedConflict types the terminal error of a retried CAS write. The last
// conflict rides along as the cause so its details stay inspectable.
func exhaustedConflict(lastErr error, operation string, candidateID kernel.CandidateID, jobID kernel.JobID) error {
	return match.ErrRegistry.NewWithCause(match.CodeConcurrencyConflict, lastErr).
		WithDetail("operation", operation+" exhausted retries").
		WithDetail("candidate_id", candidateID.String()).
		WithDetail("job_id", jobID.String()).
		WithDetail("attempts", maxWriteAttempts)
}

// toMatchResponse converts a Match entity to MatchResponse DTO
func toMatchResponse(m *match.Match) *match.MatchResponse {
	return &match.MatchResponse{
		ID:                  m.ID,
		CandidateID:         m.CandidateID,
		JobID:               m.JobID,
		Score:               m.Score,
		Breakdown:           m.Breakdown,
		Details:             m.Details,
		Status:              m.Status,
		CandidateInterested: m.CandidateInterested,
		RecruiterNotes:      m.RecruiterNotes,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toPaginatedResponse(matches *kernel.Paginated[match.Match]) *match.PaginatedMatchesResponse {
	responses := make([]match.MatchResponse, 0, len(matches.Items))
	for i := range matches.Items {
		responses = append(responses, *toMatchResponse(&matches.Items[i]))
	}

	return &kernel.Paginated[match.MatchResponse]{
		Items: responses,
		Page:  matches.Page,
		Empty: matches.Empty,
	}
}
