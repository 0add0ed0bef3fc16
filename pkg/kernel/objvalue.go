package kernel

type JobTitle string

// JobType enumerates the employment arrangements a posting can offer.
type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeRemote     JobType = "REMOTE"
)

// IsValid checks the job type against the known enum values.
func (t JobType) IsValid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return true
	}
	return false
}

// SalaryRange is a salary band in a single currency. Currency is an ISO 4217
// code; ranges in different currencies are never compared numerically.
type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}

// Location describes where a job is based. Remote postings may leave the
// city/state/country fields empty.
type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Remote  bool   `json:"remote"`
}
