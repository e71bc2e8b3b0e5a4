// Package match computes skill overlap between a candidate and a job.
package match

import "math"

// Result holds the outcome of comparing applicant skills to a job's
// required skills.
type Result struct {
	Score          float64 // 0-100, rounded to two decimals
	MatchingSkills []string
	MissingSkills  []string
}

// Score compares skill lists with set semantics. Matching and missing keep
// the required-skill ordering; the score is 100 * |matching| / |required|,
// 0 when nothing is required.
func Score(applicantSkills, requiredSkills []string) Result {
	have := make(map[string]bool, len(applicantSkills))
	for _, skill := range applicantSkills {
		have[skill] = true
	}

	result := Result{
		MatchingSkills: make([]string, 0, len(requiredSkills)),
		MissingSkills:  make([]string, 0),
	}

	seen := make(map[string]bool, len(requiredSkills))
	required := 0
	for _, skill := range requiredSkills {
		if seen[skill] {
			continue
		}
		seen[skill] = true
		required++
		if have[skill] {
			result.MatchingSkills = append(result.MatchingSkills, skill)
		} else {
			result.MissingSkills = append(result.MissingSkills, skill)
		}
	}

	if required > 0 {
		score := float64(len(result.MatchingSkills)) / float64(required) * 100
		result.Score = math.Round(score*100) / 100
	}

	return result
}
