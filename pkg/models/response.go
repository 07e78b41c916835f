package models

import (
	"math"
	"time"
)

// Pagination is the listing pagination envelope.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewPagination computes the page count for a filtered total.
func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

// JobListResponse is the listing surface payload.
type JobListResponse struct {
	Success    bool          `json:"success"`
	Jobs       []ResolvedJob `json:"jobs"`
	Pagination Pagination    `json:"pagination"`
}

// JobResponse is the single-posting payload.
type JobResponse struct {
	Success  bool        `json:"success"`
	Job      ResolvedJob `json:"job"`
	Language Locale      `json:"language"`
}

// CreateJobResponse acknowledges a created posting.
type CreateJobResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	JobID   int64  `json:"job_id"`
}

// UpdateJobResponse acknowledges a posting edit.
type UpdateJobResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MatchPagination mirrors the ranked-match pagination key names.
type MatchPagination struct {
	TotalJobs  int `json:"total_jobs"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// NewMatchPagination computes the page count for ranked-match retrieval.
func NewMatchPagination(total, page, limit int) MatchPagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return MatchPagination{TotalJobs: total, Page: page, Limit: limit, TotalPages: pages}
}

// MatchedJobsResponse serves a candidate's previously computed rankings.
type MatchedJobsResponse struct {
	Success     bool            `json:"success"`
	MatchedJobs []RankingRecord `json:"matched_jobs"`
	Pagination  MatchPagination `json:"pagination"`
}

// AppliedJobsResponse lists a candidate's applied rankings.
type AppliedJobsResponse struct {
	Success bool         `json:"success"`
	Email   string       `json:"email"`
	Jobs    []AppliedJob `json:"jobs"`
}

// AppliedJobsCountResponse carries the distinct applied-job count.
type AppliedJobsCountResponse struct {
	Success          bool   `json:"success"`
	Email            string `json:"email"`
	AppliedJobsCount int    `json:"applied_jobs_count"`
}

// MonthlyCountResponse carries the 12-month keyword histogram.
type MonthlyCountResponse struct {
	Success       bool           `json:"success"`
	MonthlyCounts []MonthlyCount `json:"monthly_counts"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
