package match

import (
	"fmt"
	"math"
	"sort"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/posting"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/profile"
)

// Factor weights. Skills and experience dominate fit; logistics factors are
// secondary. The weights must sum to 1.0, checked once at init.
const (
	weightSkills     = 0.35
	weightExperience = 0.25
	weightLocation   = 0.15
	weightSalary     = 0.15
	weightJobType    = 0.10
)

func init() {
	sum := weightSkills + weightExperience + weightLocation + weightSalary + weightJobType
	if math.Abs(sum-1.0) > 1e-9 {
		panic(fmt.Sprintf("match: factor weights sum to %v, want 1.0", sum))
	}
}

// MatchResult is the value object the aggregator produces. Identical inputs
// always produce an identical MatchResult; the repository decides whether to
// insert or merge it.
type MatchResult struct {
	Score     int            `json:"match_score"`
	Breakdown ScoreBreakdown `json:"score_breakdown"`
	Details   MatchDetails   `json:"match_details"`
}

// ScoreSkills scores the candidate's technical skills against the posting's
// required set. A posting with no required skills is trivially satisfied.
// Soft skills contribute to the matching/missing detail only, never to the
// numeric score: technical requirements are the hard filter.
func ScoreSkills(c NormalizedCandidate, j NormalizedJob) (int, []string, []string) {
	var matching, missing []string

	for skill := range j.RequiredSkills {
		if _, ok := c.TechnicalSkills[skill]; ok {
			matching = append(matching, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	for skill := range j.SoftSkills {
		if _, ok := c.SoftSkills[skill]; ok {
			matching = append(matching, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	sort.Strings(matching)
	sort.Strings(missing)

	if len(j.RequiredSkills) == 0 {
		return 100, matching, missing
	}

	hits := 0
	for skill := range j.RequiredSkills {
		if _, ok := c.TechnicalSkills[skill]; ok {
			hits++
		}
	}
	score := int(math.Round(100 * float64(hits) / float64(len(j.RequiredSkills))))

	return score, matching, missing
}

// ScoreExperience scores candidate experience against the posting's minimum.
// An unbounded minimum is trivially satisfied. The score decreases linearly
// with the shortfall and caps at 100 once the minimum is met; experience in
// excess of the posting's maximum neither helps nor hurts.
func ScoreExperience(c NormalizedCandidate, j NormalizedJob) (int, *float64) {
	if j.ExperienceMin == nil {
		return 100, nil
	}

	min := *j.ExperienceMin
	diff := c.ExperienceYears - min

	if c.ExperienceYears >= min {
		return 100, &diff
	}

	// min > 0 here: years >= 0, so years < min implies a positive minimum.
	score := int(math.Round(100 * c.ExperienceYears / min))
	if score < 0 {
		score = 0
	}
	return score, &diff
}

// ScoreLocation scores location fit by priority: remote posting, exact
// city/state match, relocation willingness, mismatch.
func ScoreLocation(c NormalizedCandidate, j NormalizedJob) (int, LocationCompatibility) {
	if j.Remote {
		return 100, LocationRemote
	}

	for _, want := range c.Locations {
		for _, have := range j.Locations {
			if want == have {
				return 100, LocationExactMatch
			}
		}
	}

	if c.WillingToRelocate {
		return 100, LocationRelocationPossible
	}

	return 0, LocationMismatch
}

// ScoreSalary scores salary fit. With either side unknown or currencies
// differing, the factor is neutral (50) rather than a mismatch: precision
// over guessing, no FX conversion. Otherwise the score is 100 while the
// candidate's minimum fits under the posting's maximum and degrades linearly
// with the gap beyond it.
func ScoreSalary(c NormalizedCandidate, j NormalizedJob) (int, SalaryCompatibility) {
	if c.Salary == nil || j.Salary == nil || c.Salary.Currency != j.Salary.Currency {
		return 50, SalaryUnknown
	}

	if c.Salary.Min <= j.Salary.Max {
		return 100, SalaryCompatible
	}

	if j.Salary.Max <= 0 {
		return 0, SalaryIncompatible
	}

	gap := c.Salary.Min - j.Salary.Max
	score := int(math.Round(100 * (1 - gap/j.Salary.Max)))
	if score <= 0 {
		return 0, SalaryIncompatible
	}
	return score, SalaryNegotiableGap
}

// ScoreJobType scores the posting's type against the candidate's stated
// preferences. No stated preference means no constraint.
func ScoreJobType(c NormalizedCandidate, j NormalizedJob) int {
	if len(c.JobTypePreferences) == 0 {
		return 100
	}
	if _, ok := c.JobTypePreferences[j.Type]; ok {
		return 100
	}
	return 0
}

// Aggregate combines the five factor scores into a MatchResult. Stateless and
// side-effect free.
func Aggregate(c NormalizedCandidate, j NormalizedJob) MatchResult {
	skills, matching, missing := ScoreSkills(c, j)
	experience, expDiff := ScoreExperience(c, j)
	location, locLabel := ScoreLocation(c, j)
	salary, salLabel := ScoreSalary(c, j)
	jobType := ScoreJobType(c, j)

	weighted := weightSkills*float64(skills) +
		weightExperience*float64(experience) +
		weightLocation*float64(location) +
		weightSalary*float64(salary) +
		weightJobType*float64(jobType)

	overall := int(math.Round(weighted))
	if overall < 0 {
		overall = 0
	} else if overall > 100 {
		overall = 100
	}

	var issues []string
	issues = append(issues, c.Issues...)
	issues = append(issues, j.Issues...)

	return MatchResult{
		Score: overall,
		Breakdown: ScoreBreakdown{
			SkillsMatch:     skills,
			ExperienceMatch: experience,
			LocationMatch:   location,
			SalaryMatch:     salary,
			JobTypeMatch:    jobType,
		},
		Details: MatchDetails{
			MatchingSkills:        matching,
			MissingSkills:         missing,
			ExperienceDifference:  expDiff,
			SalaryCompatibility:   salLabel,
			LocationCompatibility: locLabel,
			ValidationIssues:      issues,
		},
	}
}

// Score normalizes a profile/posting pair and aggregates it in one step.
func Score(p *profile.CandidateProfile, j *posting.JobPosting) MatchResult {
	return Aggregate(NormalizeCandidate(p), NormalizeJob(j))
}
