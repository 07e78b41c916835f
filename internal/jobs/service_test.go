package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tabashir-engine/internal/jobs"
	"tabashir-engine/internal/store"
	"tabashir-engine/pkg/models"
)

type fakeRepo struct {
	postings    []models.JobPosting
	total       int
	searchCalls []store.ListFilters

	byID     map[int64]models.JobPosting
	getCalls []int64

	createdID int64
	created   []models.CreateJobRequest

	updated   map[string]string
	updateErr error

	counts      []models.MonthlyCount
	countMonths int
}

func (f *fakeRepo) Search(ctx context.Context, filters store.ListFilters) ([]models.JobPosting, int, error) {
	f.searchCalls = append(f.searchCalls, filters)
	out := make([]models.JobPosting, len(f.postings))
	copy(out, f.postings)
	return out, f.total, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (models.JobPosting, error) {
	f.getCalls = append(f.getCalls, id)
	job, ok := f.byID[id]
	if !ok {
		return models.JobPosting{}, store.ErrNotFound
	}
	return job, nil
}

func (f *fakeRepo) Create(ctx context.Context, req models.CreateJobRequest) (int64, error) {
	f.created = append(f.created, req)
	return f.createdID, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, fields map[string]string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = fields
	return nil
}

func (f *fakeRepo) MonthlyCounts(ctx context.Context, keyword string, months int) ([]models.MonthlyCount, error) {
	f.countMonths = months
	return f.counts, nil
}

type fakeProfiles struct {
	profile models.CandidateProfile
	err     error
}

func (f *fakeProfiles) ProfileByEmail(ctx context.Context, email string) (models.CandidateProfile, error) {
	if f.err != nil {
		return models.CandidateProfile{}, f.err
	}
	return f.profile, nil
}

type fakeTranslations struct {
	pageCalls     int
	translatedIDs []int64
	jobCalls      int
	jobErr        error
}

func (f *fakeTranslations) TranslateJob(ctx context.Context, job models.JobPosting) (models.JobPosting, error) {
	f.jobCalls++
	if f.jobErr != nil {
		return job, f.jobErr
	}
	title := "مترجم"
	job.JobTitleAr = &title
	job.TranslationStatus = models.TranslationCompleted
	return job, nil
}

func (f *fakeTranslations) TranslatePage(ctx context.Context, postings []models.JobPosting) []int64 {
	f.pageCalls++
	return f.translatedIDs
}

type fakeQueue struct {
	submitted []int64
	err       error
}

func (f *fakeQueue) SubmitTranslationTask(ctx context.Context, jobID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.submitted = append(f.submitted, jobID)
	return "process-1", nil
}

func posting(id int64, title string) models.JobPosting {
	return models.JobPosting{
		ID:                id,
		JobTitle:          title,
		JobDescription:    "desc",
		VacancyCity:       "Dubai",
		TranslationStatus: models.TranslationPending,
	}
}

func TestListEnglishDefaults(t *testing.T) {
	repo := &fakeRepo{postings: []models.JobPosting{posting(1, "Nurse")}, total: 31}
	translations := &fakeTranslations{}
	svc := jobs.NewService(repo, &fakeProfiles{err: store.ErrNotFound}, translations, nil)

	resp, err := svc.List(context.Background(), models.ListJobsParams{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if got := repo.searchCalls[0]; got.Limit != models.DefaultPageLimit || got.Offset != 0 {
		t.Errorf("filters limit/offset = %d/%d, want %d/0", got.Limit, got.Offset, models.DefaultPageLimit)
	}
	if repo.searchCalls[0].Sort != models.SortDateDesc {
		t.Errorf("default sort = %s, want %s", repo.searchCalls[0].Sort, models.SortDateDesc)
	}
	if translations.pageCalls != 0 {
		t.Error("English listing triggered page translation")
	}
	if resp.Pagination.Total != 31 || resp.Pagination.Pages != 3 {
		t.Errorf("pagination = %+v, want total 31 pages 3", resp.Pagination)
	}
	if len(resp.Jobs) != 1 || resp.Jobs[0].MatchScore != nil {
		t.Errorf("unexpected jobs payload: %+v", resp.Jobs)
	}
}

func TestListWithEmailAddsScoresAndExclusion(t *testing.T) {
	repo := &fakeRepo{postings: []models.JobPosting{posting(1, "Nurse")}, total: 1}
	profiles := &fakeProfiles{profile: models.CandidateProfile{
		Email: "a@b.com", Positions: "Nurse", Skills: "desc", Location: "Dubai",
	}}
	svc := jobs.NewService(repo, profiles, &fakeTranslations{}, nil)

	resp, err := svc.List(context.Background(), models.ListJobsParams{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if repo.searchCalls[0].Email != "a@b.com" {
		t.Error("email not passed to filters for ranking exclusion")
	}
	if resp.Jobs[0].MatchScore == nil {
		t.Fatal("match score missing for candidate listing")
	}
	if *resp.Jobs[0].MatchScore != 100.00 {
		t.Errorf("match score = %v, want 100.00", *resp.Jobs[0].MatchScore)
	}
}

func TestListArabicRefetchesTranslatedRowsByID(t *testing.T) {
	stored := posting(1, "Nurse")
	storedTitle := "ممرضة"
	storedCity := "دبي"
	stored.JobTitleAr = &storedTitle
	stored.VacancyCityAr = &storedCity
	stored.TranslationStatus = models.TranslationCompleted

	repo := &fakeRepo{
		postings: []models.JobPosting{posting(1, "Nurse")},
		total:    1,
		byID:     map[int64]models.JobPosting{1: stored},
	}
	translations := &fakeTranslations{translatedIDs: []int64{1}}
	svc := jobs.NewService(repo, &fakeProfiles{err: store.ErrNotFound}, translations, nil)

	// The stored Arabic city would not match an Arabic-side "dubai" filter,
	// so a second filtered search could drop the row. Refetching by id must
	// keep the page intact.
	resp, err := svc.List(context.Background(), models.ListJobsParams{
		Locale:   models.LocaleArabic,
		Location: "dubai",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if translations.pageCalls != 1 {
		t.Errorf("page translation calls = %d, want 1", translations.pageCalls)
	}
	if len(repo.searchCalls) != 1 {
		t.Errorf("search calls = %d, want 1 (translated rows refetch by id)", len(repo.searchCalls))
	}
	if !repo.searchCalls[0].Arabic {
		t.Error("Arabic flag not set on filters")
	}
	if len(repo.getCalls) != 1 || repo.getCalls[0] != 1 {
		t.Errorf("refetch calls = %v, want [1]", repo.getCalls)
	}
	if len(resp.Jobs) != 1 {
		t.Fatalf("jobs = %d, want the translated row kept on the page", len(resp.Jobs))
	}
	if resp.Jobs[0].JobTitle != storedTitle {
		t.Errorf("JobTitle = %q, want stored Arabic value", resp.Jobs[0].JobTitle)
	}

	// Nothing pending on the page: no refetch.
	repo2 := &fakeRepo{postings: []models.JobPosting{posting(2, "Chef")}, total: 1}
	translations2 := &fakeTranslations{}
	svc2 := jobs.NewService(repo2, &fakeProfiles{err: store.ErrNotFound}, translations2, nil)

	if _, err := svc2.List(context.Background(), models.ListJobsParams{Locale: models.LocaleArabic}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(repo2.getCalls) != 0 {
		t.Errorf("refetch calls = %v, want none without translation", repo2.getCalls)
	}
}

func TestGetArabicTranslatesSynchronously(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]models.JobPosting{5: posting(5, "Nurse")}}
	translations := &fakeTranslations{}
	svc := jobs.NewService(repo, &fakeProfiles{err: store.ErrNotFound}, translations, nil)

	resp, err := svc.Get(context.Background(), 5, models.LocaleArabic)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if translations.jobCalls != 1 {
		t.Errorf("translate calls = %d, want 1", translations.jobCalls)
	}
	if resp.Job.JobTitle != "مترجم" {
		t.Errorf("JobTitle = %q, want Arabic value", resp.Job.JobTitle)
	}
	if resp.Language != models.LocaleArabic {
		t.Errorf("Language = %s, want ar", resp.Language)
	}
}

func TestGetArabicFallsBackToEnglishOnFailure(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]models.JobPosting{5: posting(5, "Nurse")}}
	translations := &fakeTranslations{jobErr: errors.New("provider down")}
	svc := jobs.NewService(repo, &fakeProfiles{err: store.ErrNotFound}, translations, nil)

	resp, err := svc.Get(context.Background(), 5, models.LocaleArabic)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if resp.Job.JobTitle != "Nurse" {
		t.Errorf("JobTitle = %q, want English fallback", resp.Job.JobTitle)
	}
}

func TestGetMissingPropagatesNotFound(t *testing.T) {
	svc := jobs.NewService(&fakeRepo{byID: map[int64]models.JobPosting{}}, &fakeProfiles{err: store.ErrNotFound}, &fakeTranslations{}, nil)

	if _, err := svc.Get(context.Background(), 404, models.LocaleEnglish); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateQueuesTranslation(t *testing.T) {
	repo := &fakeRepo{createdID: 77}
	queue := &fakeQueue{}
	svc := jobs.NewService(repo, &fakeProfiles{err: store.ErrNotFound}, &fakeTranslations{}, queue)

	resp, err := svc.Create(context.Background(), models.CreateJobRequest{JobTitle: "Nurse"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resp.JobID != 77 {
		t.Errorf("JobID = %d, want 77", resp.JobID)
	}
	if len(queue.submitted) != 1 || queue.submitted[0] != 77 {
		t.Errorf("queue submissions = %v, want [77]", queue.submitted)
	}
}

func TestCreateAbsorbsQueueFailure(t *testing.T) {
	repo := &fakeRepo{createdID: 8}
	queue := &fakeQueue{err: errors.New("queue full")}
	svc := jobs.NewService(repo, &fakeProfiles{err: store.ErrNotFound}, &fakeTranslations{}, queue)

	if _, err := svc.Create(context.Background(), models.CreateJobRequest{JobTitle: "Nurse"}); err != nil {
		t.Errorf("Create failed on queue error: %v", err)
	}
}

func TestUpdateLocalizedFieldQueuesRetranslation(t *testing.T) {
	repo := &fakeRepo{}
	queue := &fakeQueue{}
	svc := jobs.NewService(repo, &fakeProfiles{err: store.ErrNotFound}, &fakeTranslations{}, queue)

	title := "Senior Nurse"
	if _, err := svc.Update(context.Background(), 5, models.UpdateJobRequest{JobTitle: &title}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if repo.updated["job_title"] != "Senior Nurse" {
		t.Errorf("updated fields = %v", repo.updated)
	}
	if len(queue.submitted) != 1 {
		t.Errorf("queue submissions = %d, want 1", len(queue.submitted))
	}
}

func TestUpdateNonLocalizedFieldSkipsRetranslation(t *testing.T) {
	repo := &fakeRepo{}
	queue := &fakeQueue{}
	svc := jobs.NewService(repo, &fakeProfiles{err: store.ErrNotFound}, &fakeTranslations{}, queue)

	phone := "+971500000000"
	if _, err := svc.Update(context.Background(), 5, models.UpdateJobRequest{Phone: &phone}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(queue.submitted) != 0 {
		t.Errorf("queue submissions = %d, want 0", len(queue.submitted))
	}
}

func TestMonthlyCountsZeroFillsTrailingYear(t *testing.T) {
	now := time.Now()
	thisMonth := now.Format("2006-01")
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)

	repo := &fakeRepo{counts: []models.MonthlyCount{{Month: thisMonth, Count: 4}}}
	svc := jobs.NewService(repo, &fakeProfiles{err: store.ErrNotFound}, &fakeTranslations{}, nil)

	resp, err := svc.MonthlyCounts(context.Background(), "nurse")
	if err != nil {
		t.Fatalf("MonthlyCounts returned error: %v", err)
	}

	if repo.countMonths != 12 {
		t.Errorf("window = %d months, want 12", repo.countMonths)
	}
	if len(resp.MonthlyCounts) != 12 {
		t.Fatalf("series length = %d, want 12", len(resp.MonthlyCounts))
	}
	if resp.MonthlyCounts[0].Month != start.Format("2006-01") {
		t.Errorf("first month = %s, want %s", resp.MonthlyCounts[0].Month, start.Format("2006-01"))
	}
	if last := resp.MonthlyCounts[11]; last.Month != thisMonth || last.Count != 4 {
		t.Errorf("last bucket = %+v, want {%s 4}", last, thisMonth)
	}
	for i, c := range resp.MonthlyCounts[:11] {
		if c.Count != 0 {
			t.Errorf("bucket %d (%s) = %d, want 0", i, c.Month, c.Count)
		}
		if i > 0 && resp.MonthlyCounts[i-1].Month >= c.Month {
			t.Errorf("series not ascending at %d: %s >= %s", i, resp.MonthlyCounts[i-1].Month, c.Month)
		}
	}
}

func TestUpdateEmptyRequest(t *testing.T) {
	svc := jobs.NewService(&fakeRepo{}, &fakeProfiles{err: store.ErrNotFound}, &fakeTranslations{}, nil)

	if _, err := svc.Update(context.Background(), 5, models.UpdateJobRequest{}); !errors.Is(err, jobs.ErrNoFields) {
		t.Errorf("err = %v, want ErrNoFields", err)
	}
}
