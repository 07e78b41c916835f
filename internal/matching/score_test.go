package matching_test

import (
	"math"
	"testing"

	"tabashir-engine/internal/matching"
	"tabashir-engine/pkg/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTitleScore(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		positions string
		want      float64
	}{
		{"exact match", "Software Engineer", "Software Engineer", 1.0},
		{"partial coverage", "Senior Software Engineer", "Software Engineer", 1.0},
		{"half coverage", "Software Developer", "Software Engineer", 0.5},
		{"best of multiple positions", "Data Analyst", "Accountant, Data Analyst", 1.0},
		{"case insensitive", "SOFTWARE ENGINEER", "software engineer", 1.0},
		{"no overlap", "Chef", "Software Engineer", 0.0},
		{"empty positions", "Software Engineer", "", 0.0},
		{"empty title", "", "Software Engineer", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matching.TitleScore(tt.title, tt.positions)
			if !almostEqual(got, tt.want) {
				t.Errorf("TitleScore(%q, %q) = %v, want %v", tt.title, tt.positions, got, tt.want)
			}
		})
	}
}

func TestSkillsScore(t *testing.T) {
	tests := []struct {
		name        string
		description string
		skills      string
		want        float64
	}{
		{"all present", "We need Go and SQL experience", "Go, SQL", 1.0},
		{"half present", "We need Go experience", "Go, SQL", 0.5},
		{"multi-word skill", "Strong machine learning background required", "machine learning", 1.0},
		{"multi-word skill split", "Some machine work and lifelong learning", "machine learning", 1.0},
		{"none present", "Cooking role", "Go, SQL", 0.0},
		{"empty skills", "We need Go experience", "", 0.0},
		{"empty description", "", "Go", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matching.SkillsScore(tt.description, tt.skills)
			if !almostEqual(got, tt.want) {
				t.Errorf("SkillsScore(%q, %q) = %v, want %v", tt.description, tt.skills, got, tt.want)
			}
		})
	}
}

func TestLocationScore(t *testing.T) {
	tests := []struct {
		name      string
		jobCity   string
		candidate string
		want      float64
	}{
		{"same city", "Dubai", "Dubai", 1.0},
		{"synonym resolves", "DXB", "dubai", 1.0},
		{"hyphenated", "Ras Al-Khaimah", "ras al khaimah", 1.0},
		{"city with country suffix", "Dubai, UAE", "Dubai", 1.0},
		{"different cities", "Dubai", "Sharjah", 0.0},
		{"missing job city", "", "Dubai", 0.0},
		{"missing candidate location", "Dubai", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matching.LocationScore(tt.jobCity, tt.candidate)
			if !almostEqual(got, tt.want) {
				t.Errorf("LocationScore(%q, %q) = %v, want %v", tt.jobCity, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestScorePerfectMatch(t *testing.T) {
	job := models.JobPosting{
		JobTitle:       "Software Engineer",
		JobDescription: "Looking for Go and PostgreSQL experience",
		VacancyCity:    "Dubai",
	}
	profile := models.CandidateProfile{
		Positions: "Software Engineer",
		Skills:    "Go, PostgreSQL",
		Location:  "Dubai",
	}

	if got := matching.Score(job, profile); !almostEqual(got, 1.0) {
		t.Errorf("Score = %v, want 1.0", got)
	}
	if got := matching.Percentage(job, profile); !almostEqual(got, 100.00) {
		t.Errorf("Percentage = %v, want 100.00", got)
	}
}

func TestScoreWeightsAndRounding(t *testing.T) {
	// Title 1.0, skills 1/3, location 0: 0.4 + 0.4/3 = 0.533 after rounding.
	job := models.JobPosting{
		JobTitle:       "Accountant",
		JobDescription: "Knowledge of Excel required",
		VacancyCity:    "Sharjah",
	}
	profile := models.CandidateProfile{
		Positions: "Accountant",
		Skills:    "Excel, SAP, QuickBooks",
		Location:  "Dubai",
	}

	if got := matching.Score(job, profile); !almostEqual(got, 0.533) {
		t.Errorf("Score = %v, want 0.533", got)
	}
	if got := matching.Percentage(job, profile); !almostEqual(got, 53.3) {
		t.Errorf("Percentage = %v, want 53.3", got)
	}
}

func TestScoreZeroProfile(t *testing.T) {
	job := models.JobPosting{
		JobTitle:       "Driver",
		JobDescription: "Valid UAE license",
		VacancyCity:    "Ajman",
	}

	if got := matching.Score(job, models.CandidateProfile{}); got != 0 {
		t.Errorf("Score with empty profile = %v, want 0", got)
	}
}
