package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"tabashir-engine/pkg/models"
)

// RankingStore reads the rankings written by the offline matching
// pipeline. This service never inserts rankings.
type RankingStore struct {
	pool *pgxpool.Pool
}

// NewRankingStore creates a ranking store backed by the given pool.
func NewRankingStore(pool *pgxpool.Pool) *RankingStore {
	return &RankingStore{pool: pool}
}

// MatchedJobs returns one page of a candidate's rankings ordered by score
// descending, plus the total ranking count for pagination.
func (s *RankingStore) MatchedJobs(ctx context.Context, email string, limit, offset int) ([]models.RankingRecord, int, error) {
	const countQuery = `SELECT COUNT(*)
	FROM rankings r
	JOIN clients c ON r.client_id = c.client_id
	WHERE LOWER(c.email) = LOWER($1)`

	var total int
	if err := s.pool.QueryRow(ctx, countQuery, email).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rankings: %w", err)
	}

	const query = `SELECT r.job_id, COALESCE(r.job_title, ''),
		COALESCE(r.job_application_email, ''), COALESCE(r.job_description, ''),
		COALESCE(r.status, ''), COALESCE(r.score, 0)
	FROM rankings r
	JOIN clients c ON r.client_id = c.client_id
	WHERE LOWER(c.email) = LOWER($1)
	ORDER BY r.score DESC, r.job_id ASC
	LIMIT $2 OFFSET $3`

	rows, err := s.pool.Query(ctx, query, email, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query rankings: %w", err)
	}
	defer rows.Close()

	var records []models.RankingRecord
	for rows.Next() {
		var r models.RankingRecord
		if err := rows.Scan(&r.JobID, &r.JobTitle, &r.JobApplicationEmail,
			&r.JobDescription, &r.Status, &r.Score); err != nil {
			return nil, 0, fmt.Errorf("failed to scan ranking row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read ranking rows: %w", err)
	}

	return records, total, nil
}

// AppliedJobs returns every ranking with status applied for the candidate,
// joined with corpus columns for display. Postings that have since left the
// corpus still appear with their ranking fields.
func (s *RankingStore) AppliedJobs(ctx context.Context, email string) ([]models.AppliedJob, error) {
	const query = `SELECT COALESCE(r.job_title, ''), r.job_id, COALESCE(r.status, ''),
		COALESCE(j.vacancy_city, ''), COALESCE(j.job_date, ''),
		COALESCE(j.experience, ''), COALESCE(j.company_name, '')
	FROM rankings r
	JOIN clients c ON r.client_id = c.client_id
	LEFT JOIN jobs j ON j.id::text = r.job_id
	WHERE LOWER(c.email) = LOWER($1) AND r.status = 'applied'
	ORDER BY r.job_id ASC`

	rows, err := s.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied jobs: %w", err)
	}
	defer rows.Close()

	var applied []models.AppliedJob
	for rows.Next() {
		var a models.AppliedJob
		if err := rows.Scan(&a.JobTitle, &a.JobID, &a.Status,
			&a.Location, &a.Applied, &a.Experience, &a.Company); err != nil {
			return nil, fmt.Errorf("failed to scan applied job: %w", err)
		}
		applied = append(applied, a)
	}
	return applied, rows.Err()
}

// AppliedJobsCount counts distinct postings the candidate applied to.
func (s *RankingStore) AppliedJobsCount(ctx context.Context, email string) (int, error) {
	const query = `SELECT COUNT(DISTINCT r.job_id)
	FROM rankings r
	JOIN clients c ON r.client_id = c.client_id
	WHERE LOWER(c.email) = LOWER($1) AND r.status = 'applied'`

	var count int
	if err := s.pool.QueryRow(ctx, query, email).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applied jobs: %w", err)
	}
	return count, nil
}
