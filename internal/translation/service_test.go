package translation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tabashir-engine/internal/config"
	"tabashir-engine/internal/translation"
	"tabashir-engine/pkg/models"
)

type fakeProvider struct {
	calls  int
	fields models.TranslatedFields
	err    error
}

func (f *fakeProvider) TranslateJob(ctx context.Context, job models.JobPosting) (models.TranslatedFields, error) {
	f.calls++
	return f.fields, f.err
}

func (f *fakeProvider) IsHealthy(ctx context.Context) error { return nil }
func (f *fakeProvider) GetProviderName() string             { return "fake" }

type fakeWriter struct {
	written map[int64]models.TranslatedFields
	err     error
}

func (f *fakeWriter) SetTranslation(ctx context.Context, id int64, fields models.TranslatedFields) error {
	if f.err != nil {
		return f.err
	}
	if f.written == nil {
		f.written = make(map[int64]models.TranslatedFields)
	}
	f.written[id] = fields
	return nil
}

type fakeLocker struct {
	held     bool
	acquired []int64
	released []int64
}

func (f *fakeLocker) AcquireTranslationLock(ctx context.Context, jobID int64) (bool, error) {
	if f.held {
		return false, nil
	}
	f.acquired = append(f.acquired, jobID)
	return true, nil
}

func (f *fakeLocker) ReleaseTranslationLock(ctx context.Context, jobID int64) error {
	f.released = append(f.released, jobID)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Translator.Provider = "claude"
	cfg.Translator.Timeout = 5 * time.Second
	cfg.Translator.RateLimit = 6000
	return cfg
}

func pendingJob(id int64) models.JobPosting {
	return models.JobPosting{
		ID:                id,
		JobTitle:          "Accountant",
		JobDescription:    "Prepare monthly accounts",
		VacancyCity:       "Dubai",
		TranslationStatus: models.TranslationPending,
	}
}

func TestTranslateJobPendingPersistsAndApplies(t *testing.T) {
	provider := &fakeProvider{fields: models.TranslatedFields{
		JobTitle:    "محاسب",
		VacancyCity: "دبي",
	}}
	writer := &fakeWriter{}
	locker := &fakeLocker{}
	svc := translation.NewServiceWithProvider(testConfig(), provider, writer, locker)

	got, err := svc.TranslateJob(context.Background(), pendingJob(7))
	if err != nil {
		t.Fatalf("TranslateJob returned error: %v", err)
	}

	if !got.TranslationStatus.IsCompleted() {
		t.Errorf("status = %s, want completed", got.TranslationStatus)
	}
	if got.JobTitleAr == nil || *got.JobTitleAr != "محاسب" {
		t.Errorf("job_title_ar not applied: %v", got.JobTitleAr)
	}
	if _, ok := writer.written[7]; !ok {
		t.Error("translation was not persisted")
	}
	if len(locker.acquired) != 1 || len(locker.released) != 1 {
		t.Errorf("lock acquire/release = %d/%d, want 1/1", len(locker.acquired), len(locker.released))
	}
}

func TestTranslateJobCompletedIsIdempotent(t *testing.T) {
	provider := &fakeProvider{}
	writer := &fakeWriter{}
	svc := translation.NewServiceWithProvider(testConfig(), provider, writer, &fakeLocker{})

	job := pendingJob(3)
	job.TranslationStatus = models.TranslationCompleted

	got, err := svc.TranslateJob(context.Background(), job)
	if err != nil {
		t.Fatalf("TranslateJob returned error: %v", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times for completed posting, want 0", provider.calls)
	}
	if len(writer.written) != 0 {
		t.Error("completed posting was re-persisted")
	}
	if got.TranslationStatus != models.TranslationCompleted {
		t.Errorf("status changed to %s", got.TranslationStatus)
	}
}

func TestTranslateJobLockHeldElsewhere(t *testing.T) {
	provider := &fakeProvider{}
	svc := translation.NewServiceWithProvider(testConfig(), provider, &fakeWriter{}, &fakeLocker{held: true})

	got, err := svc.TranslateJob(context.Background(), pendingJob(9))
	if err != nil {
		t.Fatalf("TranslateJob returned error: %v", err)
	}
	if provider.calls != 0 {
		t.Error("provider called while lock was held elsewhere")
	}
	if got.TranslationStatus != models.TranslationPending {
		t.Errorf("status = %s, want pending", got.TranslationStatus)
	}
}

func TestTranslateJobProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model unavailable")}
	writer := &fakeWriter{}
	svc := translation.NewServiceWithProvider(testConfig(), provider, writer, &fakeLocker{})

	got, err := svc.TranslateJob(context.Background(), pendingJob(4))
	if err == nil {
		t.Fatal("expected error from provider failure")
	}
	if got.TranslationStatus != models.TranslationPending {
		t.Errorf("status = %s, want pending after failure", got.TranslationStatus)
	}
	if len(writer.written) != 0 {
		t.Error("failed translation was persisted")
	}
}

func TestTranslatePageTranslatesOnlyPending(t *testing.T) {
	provider := &fakeProvider{fields: models.TranslatedFields{JobTitle: "سائق"}}
	writer := &fakeWriter{}
	svc := translation.NewServiceWithProvider(testConfig(), provider, writer, &fakeLocker{})

	completed := pendingJob(1)
	completed.TranslationStatus = models.TranslationCompleted
	page := []models.JobPosting{completed, pendingJob(2), pendingJob(3)}

	translated := svc.TranslatePage(context.Background(), page)

	if len(translated) != 2 || translated[0] != 2 || translated[1] != 3 {
		t.Errorf("translated ids = %v, want [2 3]", translated)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}
	for _, job := range page {
		if !job.TranslationStatus.IsCompleted() {
			t.Errorf("job %d left pending in page", job.ID)
		}
	}
}

func TestTranslatePageAbsorbsFailures(t *testing.T) {
	provider := &fakeProvider{err: errors.New("rate limited upstream")}
	svc := translation.NewServiceWithProvider(testConfig(), provider, &fakeWriter{}, &fakeLocker{})

	page := []models.JobPosting{pendingJob(1), pendingJob(2)}
	translated := svc.TranslatePage(context.Background(), page)

	if len(translated) != 0 {
		t.Errorf("translated ids = %v, want none", translated)
	}
	for _, job := range page {
		if job.TranslationStatus.IsCompleted() {
			t.Errorf("job %d marked completed despite failure", job.ID)
		}
	}
}

func TestResolveJobArabicFallsBackPerField(t *testing.T) {
	title := "محاسب"
	empty := ""
	job := pendingJob(5)
	job.JobTitleAr = &title
	job.VacancyCityAr = &empty // empty translation falls back too

	resolved := translation.ResolveJob(job, models.LocaleArabic)
	if resolved.JobTitle != title {
		t.Errorf("JobTitle = %q, want Arabic value", resolved.JobTitle)
	}
	if resolved.VacancyCity != "Dubai" {
		t.Errorf("VacancyCity = %q, want English fallback", resolved.VacancyCity)
	}
	if resolved.JobDescription != "Prepare monthly accounts" {
		t.Errorf("JobDescription = %q, want English fallback", resolved.JobDescription)
	}
}

func TestResolveJobEnglishIgnoresArabic(t *testing.T) {
	title := "محاسب"
	job := pendingJob(6)
	job.JobTitleAr = &title

	resolved := translation.ResolveJob(job, models.LocaleEnglish)
	if resolved.JobTitle != "Accountant" {
		t.Errorf("JobTitle = %q, want English value", resolved.JobTitle)
	}
}
