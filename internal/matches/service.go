// Package matches serves a candidate's previously computed rankings: the
// paginated matched-job list and the applied-job views.
package matches

import (
	"context"
	"fmt"

	"tabashir-engine/pkg/models"
)

// RankingRepository is the rankings-table access the service needs.
type RankingRepository interface {
	MatchedJobs(ctx context.Context, email string, limit, offset int) ([]models.RankingRecord, int, error)
	AppliedJobs(ctx context.Context, email string) ([]models.AppliedJob, error)
	AppliedJobsCount(ctx context.Context, email string) (int, error)
}

// Service implements the ranked-match retrieval surfaces.
type Service struct {
	rankings RankingRepository
}

// NewService wires the match retrieval service.
func NewService(rankings RankingRepository) *Service {
	return &Service{rankings: rankings}
}

// MatchedJobs returns one page of the candidate's rankings ordered by
// score descending. A candidate with no rankings gets an empty page, not
// an error.
func (s *Service) MatchedJobs(ctx context.Context, params models.MatchedJobsParams) (*models.MatchedJobsResponse, error) {
	params.Normalize()

	records, total, err := s.rankings.MatchedJobs(ctx, params.Email, params.Limit, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matched jobs: %w", err)
	}

	if records == nil {
		records = []models.RankingRecord{}
	}

	return &models.MatchedJobsResponse{
		Success:     true,
		MatchedJobs: records,
		Pagination:  models.NewMatchPagination(total, params.Page, params.Limit),
	}, nil
}

// AppliedJobs returns every posting the candidate applied to.
func (s *Service) AppliedJobs(ctx context.Context, email string) (*models.AppliedJobsResponse, error) {
	applied, err := s.rankings.AppliedJobs(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applied jobs: %w", err)
	}

	if applied == nil {
		applied = []models.AppliedJob{}
	}

	return &models.AppliedJobsResponse{
		Success: true,
		Email:   email,
		Jobs:    applied,
	}, nil
}

// AppliedJobsCount returns how many distinct postings the candidate
// applied to.
func (s *Service) AppliedJobsCount(ctx context.Context, email string) (*models.AppliedJobsCountResponse, error) {
	count, err := s.rankings.AppliedJobsCount(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to count applied jobs: %w", err)
	}

	return &models.AppliedJobsCountResponse{
		Success:          true,
		Email:            email,
		AppliedJobsCount: count,
	}, nil
}
