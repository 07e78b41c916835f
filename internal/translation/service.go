package translation

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"tabashir-engine/internal/config"
	"tabashir-engine/internal/logging"
	"tabashir-engine/pkg/models"
)

// TranslationWriter persists a completed translation.
type TranslationWriter interface {
	SetTranslation(ctx context.Context, id int64, fields models.TranslatedFields) error
}

// Locker coordinates in-flight translation work across instances so racing
// requests do not translate the same posting twice.
type Locker interface {
	AcquireTranslationLock(ctx context.Context, jobID int64) (bool, error)
	ReleaseTranslationLock(ctx context.Context, jobID int64) error
}

// Service runs the on-demand translation workflow: provider call, persist,
// and in-memory application of the result.
type Service struct {
	config  *config.Config
	factory *Factory
	writer  TranslationWriter
	locker  Locker
	limiter *rate.Limiter
	logger  logging.Logger

	mu       sync.RWMutex
	provider Provider
	healthy  bool
}

// NewService creates a translation service. Call Start before use.
func NewService(cfg *config.Config, writer TranslationWriter, locker Locker) *Service {
	perMinute := cfg.Translator.RateLimit
	if perMinute < 1 {
		perMinute = 1
	}

	return &Service{
		config:  cfg,
		factory: NewFactory(cfg),
		writer:  writer,
		locker:  locker,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
		logger:  logging.GetGlobalLogger(),
	}
}

// NewServiceWithProvider wires a prebuilt provider, bypassing the factory.
func NewServiceWithProvider(cfg *config.Config, provider Provider, writer TranslationWriter, locker Locker) *Service {
	svc := NewService(cfg, writer, locker)
	svc.provider = provider
	svc.healthy = true
	return svc
}

// Start creates the configured provider and checks its health. A failed
// health check disables translation but does not prevent startup; English
// reads are unaffected.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	provider, err := s.factory.CreateProvider()
	if err != nil {
		return fmt.Errorf("failed to create translation provider: %w", err)
	}
	s.provider = provider

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Translator.Timeout)
	defer cancel()

	if err := provider.IsHealthy(ctx); err != nil {
		s.logger.WithField("error", err.Error()).Warn("Translation provider health check failed, Arabic responses will fall back to English")
		s.healthy = false
		return nil
	}

	s.healthy = true
	s.logger.WithField("provider", provider.GetProviderName()).Info("Translation service started")
	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = nil
	s.healthy = false
}

// IsHealthy reports whether translations can currently be produced.
func (s *Service) IsHealthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.healthy && s.provider != nil
}

// ProviderName returns the active provider's name, or "none".
func (s *Service) ProviderName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.provider != nil {
		return s.provider.GetProviderName()
	}
	return "none"
}

// TranslateJob translates one pending posting, persists the result, and
// returns the posting with the Arabic fields applied and status completed.
// Completed postings come back unchanged. When another worker holds the
// in-flight lock the posting is returned as-is and the caller falls back
// to English.
func (s *Service) TranslateJob(ctx context.Context, job models.JobPosting) (models.JobPosting, error) {
	if job.TranslationStatus.IsCompleted() {
		return job, nil
	}

	s.mu.RLock()
	provider := s.provider
	healthy := s.healthy
	s.mu.RUnlock()

	if provider == nil || !healthy {
		return job, fmt.Errorf("translation provider not available")
	}

	if s.locker != nil {
		acquired, err := s.locker.AcquireTranslationLock(ctx, job.ID)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"job_id": job.ID,
				"error":  err.Error(),
			}).Warn("Translation lock unavailable, proceeding without it")
		} else if !acquired {
			return job, nil
		} else {
			defer func() {
				if err := s.locker.ReleaseTranslationLock(context.WithoutCancel(ctx), job.ID); err != nil {
					s.logger.WithField("job_id", job.ID).Warn("Failed to release translation lock")
				}
			}()
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return job, fmt.Errorf("translation rate limit wait aborted: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.config.Translator.Timeout)
	defer cancel()

	fields, err := provider.TranslateJob(callCtx, job)
	if err != nil {
		return job, err
	}

	if err := s.writer.SetTranslation(ctx, job.ID, fields); err != nil {
		return job, fmt.Errorf("failed to persist translation: %w", err)
	}

	return ApplyTranslation(job, fields), nil
}

// TranslatePage translates every pending posting of a listing page in
// place. Per-posting failures are logged and absorbed; the page is served
// either way. Returns the ids of the postings that were newly translated.
func (s *Service) TranslatePage(ctx context.Context, jobs []models.JobPosting) []int64 {
	var translated []int64
	for i, job := range jobs {
		if job.TranslationStatus.IsCompleted() {
			continue
		}

		updated, err := s.TranslateJob(ctx, job)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"job_id": job.ID,
				"error":  err.Error(),
			}).Warn("Translation failed, serving English fields")
			continue
		}

		if updated.TranslationStatus.IsCompleted() {
			jobs[i] = updated
			translated = append(translated, job.ID)
		}
	}
	return translated
}

// ApplyTranslation returns a copy of the posting with the Arabic columns
// set and the status marked completed.
func ApplyTranslation(job models.JobPosting, fields models.TranslatedFields) models.JobPosting {
	job.JobTitleAr = &fields.JobTitle
	job.JobDescriptionAr = &fields.JobDescription
	job.AcademicQualificationAr = &fields.AcademicQualification
	job.ExperienceAr = &fields.Experience
	job.LanguagesAr = &fields.Languages
	job.SalaryAr = &fields.Salary
	job.VacancyCityAr = &fields.VacancyCity
	job.WorkingHoursAr = &fields.WorkingHours
	job.WorkingDaysAr = &fields.WorkingDays
	job.CompanyNameAr = &fields.CompanyName
	job.TranslationStatus = models.TranslationCompleted
	return job
}

// ResolveJob projects a posting into the requested locale. Arabic reads
// fall back to the English value per field whenever the translation is
// missing or empty.
func ResolveJob(job models.JobPosting, locale models.Locale) models.ResolvedJob {
	resolved := models.ResolvedJob{
		ID:          job.ID,
		Entity:      job.Entity,
		Nationality: job.Nationality,
		Gender:      job.Gender,

		JobTitle:              job.JobTitle,
		JobDescription:        job.JobDescription,
		AcademicQualification: job.AcademicQualification,
		Experience:            job.Experience,
		Languages:             job.Languages,
		Salary:                job.Salary,
		VacancyCity:           job.VacancyCity,
		WorkingHours:          job.WorkingHours,
		WorkingDays:           job.WorkingDays,
		CompanyName:           job.CompanyName,

		ApplicationEmail:  job.ApplicationEmail,
		JobDate:           job.JobDate,
		Phone:             job.Phone,
		Source:            job.Source,
		ApplyURL:          job.ApplyURL,
		WebsiteURL:        job.WebsiteURL,
		JobType:           job.JobType,
		TranslationStatus: job.TranslationStatus,
	}

	if locale != models.LocaleArabic {
		return resolved
	}

	pick := func(ar *string, en string) string {
		if ar != nil && *ar != "" {
			return *ar
		}
		return en
	}

	resolved.JobTitle = pick(job.JobTitleAr, job.JobTitle)
	resolved.JobDescription = pick(job.JobDescriptionAr, job.JobDescription)
	resolved.AcademicQualification = pick(job.AcademicQualificationAr, job.AcademicQualification)
	resolved.Experience = pick(job.ExperienceAr, job.Experience)
	resolved.Languages = pick(job.LanguagesAr, job.Languages)
	resolved.Salary = pick(job.SalaryAr, job.Salary)
	resolved.VacancyCity = pick(job.VacancyCityAr, job.VacancyCity)
	resolved.WorkingHours = pick(job.WorkingHoursAr, job.WorkingHours)
	resolved.WorkingDays = pick(job.WorkingDaysAr, job.WorkingDays)
	resolved.CompanyName = pick(job.CompanyNameAr, job.CompanyName)

	return resolved
}
