package match

import (
	"testing"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/pkg/kernel"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/posting"
	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateFixture() *profile.CandidateProfile {
	return &profile.CandidateProfile{
		ID:                 "cand-1",
		TechnicalSkills:    []string{"Python", "SQL"},
		ExperienceYears:    3,
		JobTypePreferences: []kernel.JobType{kernel.JobTypeFullTime},
		ExpectedSalary:     &kernel.SalaryRange{Min: 60000, Max: 80000, Currency: "USD"},
		PreferredLocations: []string{"Lima"},
		WillingToRelocate:  true,
	}
}

func postingFixture() *posting.JobPosting {
	expMin := 2.0
	return &posting.JobPosting{
		ID:             "job-1",
		RequiredSkills: []string{"Python", "SQL", "Spark"},
		ExperienceMin:  &expMin,
		Salary:         &kernel.SalaryRange{Min: 70000, Max: 90000, Currency: "USD"},
		Type:           kernel.JobTypeFullTime,
		Location:       kernel.Location{City: "Austin", State: "TX", Country: "USA"},
	}
}

// The reference scenario: two of three required skills, experience above the
// minimum, salary expectation under the offer ceiling, relocation willing,
// preferred job type. Weighted aggregate lands on 88.
func TestScore_ReferenceScenario(t *testing.T) {
	result := Score(candidateFixture(), postingFixture())

	assert.Equal(t, 67, result.Breakdown.SkillsMatch)
	assert.Equal(t, 100, result.Breakdown.ExperienceMatch)
	assert.Equal(t, 100, result.Breakdown.LocationMatch)
	assert.Equal(t, 100, result.Breakdown.SalaryMatch)
	assert.Equal(t, 100, result.Breakdown.JobTypeMatch)
	assert.Equal(t, 88, result.Score)

	assert.Equal(t, []string{"python", "sql"}, result.Details.MatchingSkills)
	assert.Equal(t, []string{"spark"}, result.Details.MissingSkills)
	require.NotNil(t, result.Details.ExperienceDifference)
	assert.Equal(t, 1.0, *result.Details.ExperienceDifference)
	assert.Equal(t, SalaryCompatible, result.Details.SalaryCompatibility)
	assert.Equal(t, LocationRelocationPossible, result.Details.LocationCompatibility)
	assert.Empty(t, result.Details.ValidationIssues)
}

func TestScore_Deterministic(t *testing.T) {
	first := Score(candidateFixture(), postingFixture())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(candidateFixture(), postingFixture()))
	}
}

func TestScoreSkills_NoRequiredSkills(t *testing.T) {
	c := NormalizeCandidate(&profile.CandidateProfile{})
	j := NormalizeJob(&posting.JobPosting{Type: kernel.JobTypeFullTime})

	score, matching, missing := ScoreSkills(c, j)
	assert.Equal(t, 100, score)
	assert.Empty(t, matching)
	assert.Empty(t, missing)
}

func TestScoreSkills_CaseInsensitive(t *testing.T) {
	c := NormalizeCandidate(&profile.CandidateProfile{
		TechnicalSkills: []string{"GO", "  postgresql "},
	})
	j := NormalizeJob(&posting.JobPosting{
		RequiredSkills: []string{"go", "PostgreSQL"},
		Type:           kernel.JobTypeFullTime,
	})

	score, matching, missing := ScoreSkills(c, j)
	assert.Equal(t, 100, score)
	assert.Equal(t, []string{"go", "postgresql"}, matching)
	assert.Empty(t, missing)
}

func TestScoreSkills_SoftSkillsDetailOnly(t *testing.T) {
	c := NormalizeCandidate(&profile.CandidateProfile{
		TechnicalSkills: []string{"go"},
		SoftSkills:      []string{"communication"},
	})
	j := NormalizeJob(&posting.JobPosting{
		RequiredSkills: []string{"go"},
		SoftSkills:     []string{"communication", "leadership"},
		Type:           kernel.JobTypeFullTime,
	})

	score, matching, missing := ScoreSkills(c, j)
	assert.Equal(t, 100, score, "soft skills never move the numeric score")
	assert.Equal(t, []string{"communication", "go"}, matching)
	assert.Equal(t, []string{"leadership"}, missing)
}

func TestScoreExperience_UnboundedMinimum(t *testing.T) {
	c := NormalizeCandidate(&profile.CandidateProfile{ExperienceYears: 1})
	j := NormalizeJob(&posting.JobPosting{Type: kernel.JobTypeFullTime})

	score, diff := ScoreExperience(c, j)
	assert.Equal(t, 100, score)
	assert.Nil(t, diff)
}

func TestScoreExperience_Shortfall(t *testing.T) {
	min := 6.0
	c := NormalizeCandidate(&profile.CandidateProfile{ExperienceYears: 3})
	j := NormalizeJob(&posting.JobPosting{ExperienceMin: &min, Type: kernel.JobTypeFullTime})

	score, diff := ScoreExperience(c, j)
	assert.Equal(t, 50, score)
	require.NotNil(t, diff)
	assert.Equal(t, -3.0, *diff)
}

func TestScoreExperience_OverqualificationNotPenalized(t *testing.T) {
	min, max := 2.0, 5.0
	j := NormalizeJob(&posting.JobPosting{
		ExperienceMin: &min,
		ExperienceMax: &max,
		Type:          kernel.JobTypeFullTime,
	})

	atMin, _ := ScoreExperience(NormalizeCandidate(&profile.CandidateProfile{ExperienceYears: 2}), j)
	atMax, _ := ScoreExperience(NormalizeCandidate(&profile.CandidateProfile{ExperienceYears: 5}), j)
	wayOver, _ := ScoreExperience(NormalizeCandidate(&profile.CandidateProfile{ExperienceYears: 20}), j)

	assert.Equal(t, 100, atMin)
	assert.Equal(t, 100, atMax)
	assert.Equal(t, 100, wayOver)
}

func TestScoreLocation_PriorityOrder(t *testing.T) {
	remote := NormalizeJob(&posting.JobPosting{
		Type:     kernel.JobTypeRemote,
		Location: kernel.Location{City: "Lima", Remote: true},
	})
	onsite := NormalizeJob(&posting.JobPosting{
		Type:     kernel.JobTypeFullTime,
		Location: kernel.Location{City: "Lima", Country: "Peru"},
	})

	relocator := NormalizeCandidate(&profile.CandidateProfile{
		PreferredLocations: []string{"Lima"},
		WillingToRelocate:  true,
	})
	localOnly := NormalizeCandidate(&profile.CandidateProfile{
		PreferredLocations: []string{"Cusco"},
	})

	// Remote wins even when the candidate also matches the city
	score, label := ScoreLocation(relocator, remote)
	assert.Equal(t, 100, score)
	assert.Equal(t, LocationRemote, label)

	// Exact match wins over relocation willingness
	score, label = ScoreLocation(relocator, onsite)
	assert.Equal(t, 100, score)
	assert.Equal(t, LocationExactMatch, label)

	// Relocation as the fallback
	score, label = ScoreLocation(NormalizeCandidate(&profile.CandidateProfile{
		PreferredLocations: []string{"Cusco"},
		WillingToRelocate:  true,
	}), onsite)
	assert.Equal(t, 100, score)
	assert.Equal(t, LocationRelocationPossible, label)

	// Nothing lines up
	score, label = ScoreLocation(localOnly, onsite)
	assert.Equal(t, 0, score)
	assert.Equal(t, LocationMismatch, label)
}

func TestScoreSalary_UnknownIsNeutral(t *testing.T) {
	j := NormalizeJob(&posting.JobPosting{
		Salary: &kernel.SalaryRange{Min: 50000, Max: 70000, Currency: "USD"},
		Type:   kernel.JobTypeFullTime,
	})

	// Candidate silent on salary
	score, label := ScoreSalary(NormalizeCandidate(&profile.CandidateProfile{}), j)
	assert.Equal(t, 50, score)
	assert.Equal(t, SalaryUnknown, label)

	// Job silent on salary
	score, label = ScoreSalary(NormalizeCandidate(&profile.CandidateProfile{
		ExpectedSalary: &kernel.SalaryRange{Min: 50000, Max: 70000, Currency: "USD"},
	}), NormalizeJob(&posting.JobPosting{Type: kernel.JobTypeFullTime}))
	assert.Equal(t, 50, score)
	assert.Equal(t, SalaryUnknown, label)

	// Currency mismatch, no FX conversion attempted
	score, label = ScoreSalary(NormalizeCandidate(&profile.CandidateProfile{
		ExpectedSalary: &kernel.SalaryRange{Min: 50000, Max: 70000, Currency: "EUR"},
	}), j)
	assert.Equal(t, 50, score)
	assert.Equal(t, SalaryUnknown, label)
}

func TestScoreSalary_GapDegradation(t *testing.T) {
	j := NormalizeJob(&posting.JobPosting{
		Salary: &kernel.SalaryRange{Min: 60000, Max: 80000, Currency: "USD"},
		Type:   kernel.JobTypeFullTime,
	})

	expect := func(min float64) (int, SalaryCompatibility) {
		return ScoreSalary(NormalizeCandidate(&profile.CandidateProfile{
			ExpectedSalary: &kernel.SalaryRange{Min: min, Max: min + 20000, Currency: "USD"},
		}), j)
	}

	// Within the offer ceiling
	score, label := expect(75000)
	assert.Equal(t, 100, score)
	assert.Equal(t, SalaryCompatible, label)

	// 25% over the ceiling: 100 * (1 - 20000/80000) = 75
	score, label = expect(100000)
	assert.Equal(t, 75, score)
	assert.Equal(t, SalaryNegotiableGap, label)

	// Double the ceiling: gap equals the ceiling, floored at 0
	score, label = expect(160000)
	assert.Equal(t, 0, score)
	assert.Equal(t, SalaryIncompatible, label)
}

func TestScoreJobType(t *testing.T) {
	j := NormalizeJob(&posting.JobPosting{Type: kernel.JobTypeContract})

	noPreference := NormalizeCandidate(&profile.CandidateProfile{})
	score := ScoreJobType(noPreference, j)
	assert.Equal(t, 100, score, "no stated preference means no constraint")

	matching := NormalizeCandidate(&profile.CandidateProfile{
		JobTypePreferences: []kernel.JobType{kernel.JobTypeContract, kernel.JobTypeFullTime},
	})
	assert.Equal(t, 100, ScoreJobType(matching, j))

	mismatched := NormalizeCandidate(&profile.CandidateProfile{
		JobTypePreferences: []kernel.JobType{kernel.JobTypeFullTime},
	})
	assert.Equal(t, 0, ScoreJobType(mismatched, j))
}

func TestAggregate_Bounds(t *testing.T) {
	profiles := []*profile.CandidateProfile{
		{},
		candidateFixture(),
		{ExperienceYears: -5, TechnicalSkills: []string{"x"}},
		{ExpectedSalary: &kernel.SalaryRange{Min: 1e9, Max: 2e9, Currency: "USD"}},
	}
	postings := []*posting.JobPosting{
		{Type: kernel.JobTypeFullTime},
		postingFixture(),
		{RequiredSkills: []string{"a", "b", "c"}, Type: kernel.JobTypeInternship,
			Salary: &kernel.SalaryRange{Min: 1, Max: 2, Currency: "USD"}},
	}

	for _, p := range profiles {
		for _, j := range postings {
			result := Score(p, j)
			assert.GreaterOrEqual(t, result.Score, 0)
			assert.LessOrEqual(t, result.Score, 100)
			for _, sub := range []int{
				result.Breakdown.SkillsMatch,
				result.Breakdown.ExperienceMatch,
				result.Breakdown.LocationMatch,
				result.Breakdown.SalaryMatch,
				result.Breakdown.JobTypeMatch,
			} {
				assert.GreaterOrEqual(t, sub, 0)
				assert.LessOrEqual(t, sub, 100)
			}
		}
	}
}

func TestAggregate_CarriesValidationIssues(t *testing.T) {
	result := Score(
		&profile.CandidateProfile{ExperienceYears: -1},
		&posting.JobPosting{
			Type:   kernel.JobTypeFullTime,
			Salary: &kernel.SalaryRange{Min: 90000, Max: 60000, Currency: "USD"},
		},
	)

	require.Len(t, result.Details.ValidationIssues, 2)
	assert.Contains(t, result.Details.ValidationIssues[0], "candidate experience")
	assert.Contains(t, result.Details.ValidationIssues[1], "inverted")
}
