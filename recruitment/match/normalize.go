package match

import (
	"fmt"
	"strings"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/posting"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/profile"
)

// RemoteLocation is the sentinel a remote posting's location normalizes to,
// regardless of any city/state text on the posting.
const RemoteLocation = "REMOTE"

// SalaryBounds is a normalized salary range. A nil *SalaryBounds anywhere in
// the normalized forms means "unknown", never zero: upstream data is
// best-effort and zero would wrongly penalize or reward in the scorers.
type SalaryBounds struct {
	Min      float64
	Max      float64
	Currency string
}

// NormalizedCandidate is the comparable form of a CandidateProfile.
type NormalizedCandidate struct {
	TechnicalSkills    map[string]struct{}
	SoftSkills         map[string]struct{}
	ExperienceYears    float64
	JobTypePreferences map[kernel.JobType]struct{}
	Salary             *SalaryBounds // nil = no stated expectation
	Locations          []string      // lower-cased preferred location strings
	WillingToRelocate  bool
	Issues             []string // recoverable validation issues, recorded for observability
}

// NormalizedJob is the comparable form of a JobPosting.
type NormalizedJob struct {
	RequiredSkills map[string]struct{}
	SoftSkills     map[string]struct{}
	ExperienceMin  *float64 // nil = unbounded
	ExperienceMax  *float64 // nil = unbounded
	Salary         *SalaryBounds
	Type           kernel.JobType
	Locations      []string // lower-cased city/state, or the REMOTE sentinel
	Remote         bool
	Issues         []string
}

// NormalizeSkill canonicalizes a free-text skill string: lower-case, trim,
// collapse internal whitespace.
func NormalizeSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// normalizeSkillSet canonicalizes and deduplicates skills into a set; order
// and duplicates in the input are meaningless.
func normalizeSkillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		if n := NormalizeSkill(s); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// normalizeSalary clamps negative bounds to zero and swaps inverted ranges,
// recording each correction. A nil input stays nil (unknown).
func normalizeSalary(r *kernel.SalaryRange, issues *[]string, side string) *SalaryBounds {
	if r == nil {
		return nil
	}

	min, max := r.Min, r.Max
	if min < 0 {
		*issues = append(*issues, fmt.Sprintf("%s salary min %.2f negative, clamped to 0", side, min))
		min = 0
	}
	if max < 0 {
		*issues = append(*issues, fmt.Sprintf("%s salary max %.2f negative, clamped to 0", side, max))
		max = 0
	}
	if max < min {
		*issues = append(*issues, fmt.Sprintf("%s salary range inverted (min %.2f > max %.2f), swapped", side, min, max))
		min, max = max, min
	}

	return &SalaryBounds{
		Min:      min,
		Max:      max,
		Currency: strings.ToUpper(strings.TrimSpace(r.Currency)),
	}
}

// NormalizeCandidate canonicalizes a candidate profile into its comparable
// form. Malformed numeric fields are corrected, never rejected: scoring must
// always produce a result.
func NormalizeCandidate(p *profile.CandidateProfile) NormalizedCandidate {
	var issues []string

	years := p.ExperienceYears
	if years < 0 {
		issues = append(issues, fmt.Sprintf("candidate experience %.1f negative, clamped to 0", years))
		years = 0
	}

	prefs := make(map[kernel.JobType]struct{}, len(p.JobTypePreferences))
	for _, t := range p.JobTypePreferences {
		if !t.IsValid() {
			issues = append(issues, fmt.Sprintf("unknown job type preference %q ignored", string(t)))
			continue
		}
		prefs[t] = struct{}{}
	}

	locations := make([]string, 0, len(p.PreferredLocations))
	for _, loc := range p.PreferredLocations {
		if l := strings.ToLower(strings.TrimSpace(loc)); l != "" {
			locations = append(locations, l)
		}
	}

	return NormalizedCandidate{
		TechnicalSkills:    normalizeSkillSet(p.TechnicalSkills),
		SoftSkills:         normalizeSkillSet(p.SoftSkills),
		ExperienceYears:    years,
		JobTypePreferences: prefs,
		Salary:             normalizeSalary(p.ExpectedSalary, &issues, "candidate"),
		Locations:          locations,
		WillingToRelocate:  p.WillingToRelocate,
		Issues:             issues,
	}
}

// NormalizeJob canonicalizes a job posting into its comparable form.
func NormalizeJob(j *posting.JobPosting) NormalizedJob {
	var issues []string

	expMin, expMax := j.ExperienceMin, j.ExperienceMax
	if expMin != nil && *expMin < 0 {
		issues = append(issues, fmt.Sprintf("job experience min %.1f negative, clamped to 0", *expMin))
		zero := 0.0
		expMin = &zero
	}
	if expMax != nil && *expMax < 0 {
		issues = append(issues, fmt.Sprintf("job experience max %.1f negative, clamped to 0", *expMax))
		zero := 0.0
		expMax = &zero
	}
	if expMin != nil && expMax != nil && *expMax < *expMin {
		issues = append(issues, fmt.Sprintf("job experience range inverted (min %.1f > max %.1f), swapped", *expMin, *expMax))
		expMin, expMax = expMax, expMin
	}

	var locations []string
	if j.Location.Remote {
		// A remote posting always normalizes to the sentinel, whatever
		// city/state text it carries.
		locations = []string{RemoteLocation}
	} else {
		for _, part := range []string{j.Location.City, j.Location.State, j.Location.Country} {
			if l := strings.ToLower(strings.TrimSpace(part)); l != "" {
				locations = append(locations, l)
			}
		}
	}

	jobType := j.Type
	if !jobType.IsValid() {
		issues = append(issues, fmt.Sprintf("unknown job type %q", string(jobType)))
	}

	return NormalizedJob{
		RequiredSkills: normalizeSkillSet(j.RequiredSkills),
		SoftSkills:     normalizeSkillSet(j.SoftSkills),
		ExperienceMin:  expMin,
		ExperienceMax:  expMax,
		Salary:         normalizeSalary(j.Salary, &issues, "job"),
		Type:           jobType,
		Locations:      locations,
		Remote:         j.Location.Remote,
		Issues:         issues,
	}
}
