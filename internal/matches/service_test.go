package matches_test

import (
	"context"
	"fmt"
	"testing"

	"tabashir-engine/internal/matches"
	"tabashir-engine/pkg/models"
)

// fakeRankings pages over an in-memory ranking set the way the SQL layer
// would.
type fakeRankings struct {
	records []models.RankingRecord
	applied []models.AppliedJob
	count   int
}

func (f *fakeRankings) MatchedJobs(ctx context.Context, email string, limit, offset int) ([]models.RankingRecord, int, error) {
	total := len(f.records)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return f.records[offset:end], total, nil
}

func (f *fakeRankings) AppliedJobs(ctx context.Context, email string) ([]models.AppliedJob, error) {
	return f.applied, nil
}

func (f *fakeRankings) AppliedJobsCount(ctx context.Context, email string) (int, error) {
	return f.count, nil
}

func rankingSet(n int) []models.RankingRecord {
	records := make([]models.RankingRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.RankingRecord{
			JobID: fmt.Sprintf("job-%02d", i),
			Score: float64(n - i), // already sorted score DESC
		})
	}
	return records
}

func TestMatchedJobsSecondPage(t *testing.T) {
	svc := matches.NewService(&fakeRankings{records: rankingSet(15)})

	resp, err := svc.MatchedJobs(context.Background(), models.MatchedJobsParams{
		Email: "a@b.com", Page: 2, Limit: 10,
	})
	if err != nil {
		t.Fatalf("MatchedJobs returned error: %v", err)
	}

	if len(resp.MatchedJobs) != 5 {
		t.Errorf("page 2 items = %d, want 5", len(resp.MatchedJobs))
	}
	if resp.Pagination.TotalJobs != 15 {
		t.Errorf("total_jobs = %d, want 15", resp.Pagination.TotalJobs)
	}
	if resp.Pagination.TotalPages != 2 {
		t.Errorf("total_pages = %d, want 2", resp.Pagination.TotalPages)
	}
	if resp.MatchedJobs[0].JobID != "job-10" {
		t.Errorf("first item = %s, want job-10", resp.MatchedJobs[0].JobID)
	}
}

func TestMatchedJobsDefaultsPagination(t *testing.T) {
	svc := matches.NewService(&fakeRankings{records: rankingSet(20)})

	resp, err := svc.MatchedJobs(context.Background(), models.MatchedJobsParams{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("MatchedJobs returned error: %v", err)
	}

	if len(resp.MatchedJobs) != models.DefaultPageLimit {
		t.Errorf("items = %d, want %d", len(resp.MatchedJobs), models.DefaultPageLimit)
	}
	if resp.Pagination.Page != 1 || resp.Pagination.Limit != models.DefaultPageLimit {
		t.Errorf("pagination = %+v", resp.Pagination)
	}
}

func TestMatchedJobsEmptyForUnknownCandidate(t *testing.T) {
	svc := matches.NewService(&fakeRankings{})

	resp, err := svc.MatchedJobs(context.Background(), models.MatchedJobsParams{Email: "nobody@b.com"})
	if err != nil {
		t.Fatalf("MatchedJobs returned error: %v", err)
	}
	if resp.MatchedJobs == nil || len(resp.MatchedJobs) != 0 {
		t.Errorf("matched_jobs = %v, want empty slice", resp.MatchedJobs)
	}
	if resp.Pagination.TotalPages != 0 {
		t.Errorf("total_pages = %d, want 0", resp.Pagination.TotalPages)
	}
}

func TestAppliedJobs(t *testing.T) {
	svc := matches.NewService(&fakeRankings{applied: []models.AppliedJob{
		{JobID: "9", JobTitle: "Nurse", Status: "applied"},
	}})

	resp, err := svc.AppliedJobs(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("AppliedJobs returned error: %v", err)
	}
	if resp.Email != "a@b.com" || len(resp.Jobs) != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestAppliedJobsCount(t *testing.T) {
	svc := matches.NewService(&fakeRankings{count: 4})

	resp, err := svc.AppliedJobsCount(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("AppliedJobsCount returned error: %v", err)
	}
	if resp.AppliedJobsCount != 4 {
		t.Errorf("count = %d, want 4", resp.AppliedJobsCount)
	}
}
