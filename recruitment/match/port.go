package match

import (
	"context"
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
)

type Repository interface {
	// Upsert atomically creates the match for its (candidate, job) pair or,
	// when the pair already exists, replaces score/breakdown/details and
	// bumps updated_at and version. It never touches status, candidate
	// interest or recruiter notes of an existing record, and never creates a
	// duplicate pair even under concurrent callers. Returns the stored record.
	Upsert(ctx context.Context, m *Match) (*Match, error)

	// GetByPair retrieves the match for a candidate/job pair
	GetByPair(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*Match, error)

	// GetByID retrieves a match by record ID
	GetByID(ctx context.Context, id kernel.MatchID) (*Match, error)

	// ListByCandidate retrieves a candidate's matches ordered by descending
	// score, ties broken by most recent updated_at. minScore filters when set.
	ListByCandidate(ctx context.Context, candidateID kernel.CandidateID, minScore *int, pagination kernel.PaginationOptions) (*kernel.Paginated[Match], error)

	// ListByJob retrieves a posting's matches with the same ordering contract
	ListByJob(ctx context.Context, jobID kernel.JobID, minScore *int, pagination kernel.PaginationOptions) (*kernel.Paginated[Match], error)

	// UpdateStatus writes a new status iff the stored version still equals
	// version (compare-and-swap) and returns the row as stored, so callers
	// see the repository's timestamps and version. A stale version fails
	// with ConcurrencyConflict; a missing record with NotFound.
	UpdateStatus(ctx context.Context, id kernel.MatchID, status MatchStatus, version int64) (*Match, error)

	// SetCandidateInterest writes the interest flag under the same CAS discipline
	SetCandidateInterest(ctx context.Context, id kernel.MatchID, interested bool, version int64) (*Match, error)

	// UpdateRecruiterNotes writes recruiter notes under the same CAS discipline
	UpdateRecruiterNotes(ctx context.Context, id kernel.MatchID, notes string, version int64) (*Match, error)

	// GetCandidateStats returns per-status counts and the best score for a candidate
	GetCandidateStats(ctx context.Context, candidateID kernel.CandidateID) (*CandidateMatchStatsResponse, error)
}

// RescoreKind discriminates what changed upstream
type RescoreKind string

const (
	RescoreKindCandidate RescoreKind = "CANDIDATE" // profile changed, rescore all published postings
	RescoreKindJob       RescoreKind = "JOB"       // posting changed, rescore all active profiles
)

// RescoreSignal is the queued trigger emitted when a profile or posting changes
type RescoreSignal struct {
	ID          string             `json:"id"`
	Kind        RescoreKind        `json:"kind"`
	CandidateID kernel.CandidateID `json:"candidate_id,omitempty"`
	JobID       kernel.JobID       `json:"job_id,omitempty"`
	Attempt     int                `json:"attempt"`
	EnqueuedAt  time.Time          `json:"enqueued_at"`
}

type RescoreQueue interface {
	// Enqueue adds a rescore signal to the queue
	Enqueue(ctx context.Context, signal *RescoreSignal) error

	// EnqueueDelayed schedules a signal for later processing (retries)
	EnqueueDelayed(ctx context.Context, signal *RescoreSignal, delay time.Duration) error

	// Dequeue gets a signal from the queue (blocking with timeout); (nil, nil)
	// when the queue is empty
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// MoveDelayedToReady moves due delayed signals to the main queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	// Stats returns queue depth statistics
	Stats(ctx context.Context) (map[string]any, error)
}
