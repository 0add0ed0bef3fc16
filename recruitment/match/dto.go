package match

import (
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
)

// TransitionRequest - DTO for a lifecycle action
type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

// InterestRequest - DTO for the candidate interest flag
type InterestRequest struct {
	Interested *bool `json:"interested" validate:"required"`
}

// NotesRequest - DTO for recruiter notes
type NotesRequest struct {
	Notes string `json:"notes"`
}

// MatchResponse - DTO for returning match data
type MatchResponse struct {
	ID                  kernel.MatchID     `json:"id"`
	CandidateID         kernel.CandidateID `json:"candidate_id"`
	JobID               kernel.JobID       `json:"job_id"`
	Score               int                `json:"match_score"`
	Breakdown           ScoreBreakdown     `json:"score_breakdown"`
	Details             MatchDetails       `json:"match_details"`
	Status              MatchStatus        `json:"status"`
	CandidateInterested *bool              `json:"candidate_interested"`
	RecruiterNotes      string             `json:"recruiter_notes,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// Response type alias for paginated matches
type PaginatedMatchesResponse = kernel.Paginated[MatchResponse]

// CandidateMatchStatsResponse - Per-candidate funnel summary
type CandidateMatchStatsResponse struct {
	CandidateID kernel.CandidateID    `json:"candidate_id"`
	Total       int64                 `json:"total"`
	ByStatus    map[MatchStatus]int64 `json:"by_status"`
	BestScore   *int                  `json:"best_score,omitempty"`
}

// RescoreReport - Result of a batch rescore fan-out
type RescoreReport struct {
	Kind   RescoreKind `json:"kind"`
	Pairs  int         `json:"pairs"`
	Scored int         `json:"scored"`
	Failed int         `json:"failed"`
}

// RescoreQueuedResponse - Acknowledgement for an enqueued trigger
type RescoreQueuedResponse struct {
	SignalID   string      `json:"signal_id"`
	Kind       RescoreKind `json:"kind"`
	EnqueuedAt time.Time   `json:"enqueued_at"`
}
