package match

import (
	"slices"
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
)

// MatchStatus represents the status of a match in the hiring funnel
type MatchStatus string

const (
	MatchStatusPending      MatchStatus = "PENDING"      // Freshly scored, nobody acted yet
	MatchStatusViewed       MatchStatus = "VIEWED"       // Recruiter opened the match
	MatchStatusShortlisted  MatchStatus = "SHORTLISTED"  // Recruiter shortlisted the candidate
	MatchStatusInterviewing MatchStatus = "INTERVIEWING" // Interview booked by the scheduler
	MatchStatusHired        MatchStatus = "HIRED"        // Terminal
	MatchStatusRejected     MatchStatus = "REJECTED"     // Terminal, reachable from any non-terminal state
)

// validTransitions lists every allowed (from -> to) pair. HIRED and REJECTED
// have no outgoing transitions.
var validTransitions = map[MatchStatus][]MatchStatus{
	MatchStatusPending:      {MatchStatusViewed, MatchStatusRejected},
	MatchStatusViewed:       {MatchStatusShortlisted, MatchStatusRejected},
	MatchStatusShortlisted:  {MatchStatusInterviewing, MatchStatusRejected},
	MatchStatusInterviewing: {MatchStatusHired, MatchStatusRejected},
}

// ParseMatchStatus converts a raw string to a MatchStatus, failing on unknown values.
func ParseMatchStatus(s string) (MatchStatus, error) {
	st := MatchStatus(s)
	switch st {
	case MatchStatusPending, MatchStatusViewed, MatchStatusShortlisted,
		MatchStatusInterviewing, MatchStatusHired, MatchStatusRejected:
		return st, nil
	}
	return "", ErrUnknownStatus().WithDetail("status", s)
}

// IsTerminal checks whether the status allows no further transitions
func (s MatchStatus) IsTerminal() bool {
	return s == MatchStatusHired || s == MatchStatusRejected
}

// SalaryCompatibility labels the salary factor outcome
type SalaryCompatibility string

const (
	SalaryCompatible    SalaryCompatibility = "compatible"
	SalaryNegotiableGap SalaryCompatibility = "negotiable-gap"
	SalaryIncompatible  SalaryCompatibility = "incompatible"
	SalaryUnknown       SalaryCompatibility = "unknown"
)

// LocationCompatibility labels the location factor outcome
type LocationCompatibility string

const (
	LocationRemote             LocationCompatibility = "remote"
	LocationExactMatch         LocationCompatibility = "exact-match"
	LocationRelocationPossible LocationCompatibility = "relocation-possible"
	LocationMismatch           LocationCompatibility = "mismatch"
)

// ScoreBreakdown holds the five factor sub-scores, each in [0,100]
type ScoreBreakdown struct {
	SkillsMatch     int `json:"skills_match"`
	ExperienceMatch int `json:"experience_match"`
	LocationMatch   int `json:"location_match"`
	SalaryMatch     int `json:"salary_match"`
	JobTypeMatch    int `json:"job_type_match"`
}

// MatchDetails explains the breakdown: what matched, what is missing,
// and why logistics factors scored the way they did.
type MatchDetails struct {
	MatchingSkills        []string              `json:"matching_skills"`
	MissingSkills         []string              `json:"missing_skills"`
	ExperienceDifference  *float64              `json:"experience_difference,omitempty"`
	SalaryCompatibility   SalaryCompatibility   `json:"salary_compatibility"`
	LocationCompatibility LocationCompatibility `json:"location_compatibility"`
	ValidationIssues      []string              `json:"validation_issues,omitempty"`
}

type Match struct {
	ID                  kernel.MatchID     `db:"id" json:"id"`
	CandidateID         kernel.CandidateID `db:"candidate_id" json:"candidate_id"`
	JobID               kernel.JobID       `db:"job_id" json:"job_id"`
	Score               int                `db:"match_score" json:"match_score"`
	Breakdown           ScoreBreakdown     `db:"score_breakdown" json:"score_breakdown"`
	Details             MatchDetails       `db:"match_details" json:"match_details"`
	Status              MatchStatus        `db:"status" json:"status"`
	CandidateInterested *bool              `db:"candidate_interested" json:"candidate_interested"`
	RecruiterNotes      string             `db:"recruiter_notes" json:"recruiter_notes"`
	Version             int64              `db:"version" json:"version"`
	CreatedAt           time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsTerminal checks if the match reached a terminal status
func (m *Match) IsTerminal() bool {
	return m.Status.IsTerminal()
}

// CanTransitionTo checks whether the lifecycle permits moving to newStatus
func (m *Match) CanTransitionTo(newStatus MatchStatus) bool {
	allowed, ok := validTransitions[m.Status]
	if !ok {
		return false // terminal state, no outgoing transitions
	}
	return slices.Contains(allowed, newStatus)
}

// TransitionTo moves the match to newStatus, failing with InvalidTransition
// when the lifecycle table does not permit the move. No partial mutation
// occurs on failure.
func (m *Match) TransitionTo(newStatus MatchStatus) error {
	if !m.CanTransitionTo(newStatus) {
		return ErrInvalidTransition().
			WithDetail("current_status", m.Status).
			WithDetail("new_status", newStatus)
	}

	m.Status = newStatus
	m.UpdatedAt = time.Now()
	return nil
}

// SetCandidateInterest records the candidate's interest flag. The flag is
// orthogonal to status and never moves it, but terminal matches are frozen.
func (m *Match) SetCandidateInterest(interested bool) error {
	if m.IsTerminal() {
		return ErrMatchTerminal().
			WithDetail("status", m.Status).
			WithDetail("candidate_id", m.CandidateID.String()).
			WithDetail("job_id", m.JobID.String())
	}

	m.CandidateInterested = &interested
	m.UpdatedAt = time.Now()
	return nil
}

// ApplyResult overwrites score, breakdown and details from a rescore while
// preserving status, candidate interest and recruiter notes.
func (m *Match) ApplyResult(result MatchResult) {
	m.Score = result.Score
	m.Breakdown = result.Breakdown
	m.Details = result.Details
	m.UpdatedAt = time.Now()
}
