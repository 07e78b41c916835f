// Package matching computes how well a candidate profile fits a job
// posting. Scoring is deterministic and side-effect free: malformed or
// empty inputs score low, never error.
package matching

import (
	"math"
	"regexp"
	"strings"

	"tabashir-engine/pkg/models"
)

// Combination weights. These are wire-compatible constants shared with the
// offline ranking pipeline; changing them breaks score comparability.
const (
	titleWeight    = 0.4
	skillsWeight   = 0.4
	locationWeight = 0.2
)

var tokenPattern = regexp.MustCompile(`[a-z0-9+#]+`)

// Score combines the three sub-scores into a match score in [0, 1],
// rounded to 3 decimals.
func Score(job models.JobPosting, profile models.CandidateProfile) float64 {
	title := TitleScore(job.JobTitle, profile.Positions)
	skills := SkillsScore(job.JobDescription, profile.Skills)
	location := LocationScore(job.VacancyCity, profile.Location)

	return round(titleWeight*title+skillsWeight*skills+locationWeight*location, 3)
}

// Percentage returns the externally reported score: Score scaled to [0, 100]
// and rounded to 2 decimals.
func Percentage(job models.JobPosting, profile models.CandidateProfile) float64 {
	return round(Score(job, profile)*100, 2)
}

// TitleScore measures how well the job title covers any of the candidate's
// comma-separated desired positions. For each position the score is the
// fraction of its tokens present in the title; the best position wins.
func TitleScore(title, positions string) float64 {
	titleTokens := tokenSet(title)
	if len(titleTokens) == 0 {
		return 0
	}

	best := 0.0
	for _, position := range splitList(positions) {
		posTokens := tokenize(position)
		if len(posTokens) == 0 {
			continue
		}

		hits := 0
		for _, tok := range posTokens {
			if titleTokens[tok] {
				hits++
			}
		}

		if coverage := float64(hits) / float64(len(posTokens)); coverage > best {
			best = coverage
		}
	}

	return best
}

// SkillsScore measures what fraction of the candidate's comma-separated
// skills appear in the job description. Multi-word skills count only when
// every token is present.
func SkillsScore(description, skills string) float64 {
	descTokens := tokenSet(description)
	if len(descTokens) == 0 {
		return 0
	}

	wanted := splitList(skills)
	if len(wanted) == 0 {
		return 0
	}

	hits := 0
	for _, skill := range wanted {
		tokens := tokenize(skill)
		if len(tokens) == 0 {
			continue
		}

		found := true
		for _, tok := range tokens {
			if !descTokens[tok] {
				found = false
				break
			}
		}
		if found {
			hits++
		}
	}

	return float64(hits) / float64(len(wanted))
}

// splitList splits a comma-separated free-text list, dropping empties.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func tokenize(s string) []string {
	return tokenPattern.FindAllString(strings.ToLower(s), -1)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokenize(s) {
		set[tok] = true
	}
	return set
}

func round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}
