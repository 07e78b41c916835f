// Package jobs orchestrates the listing and posting surfaces: filtering,
// pagination, on-demand Arabic translation, and match-score enrichment.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tabashir-engine/internal/logging"
	"tabashir-engine/internal/matching"
	"tabashir-engine/internal/store"
	"tabashir-engine/internal/translation"
	"tabashir-engine/pkg/models"
)

// Repository is the jobs-table access the service needs.
type Repository interface {
	Search(ctx context.Context, filters store.ListFilters) ([]models.JobPosting, int, error)
	GetByID(ctx context.Context, id int64) (models.JobPosting, error)
	Create(ctx context.Context, req models.CreateJobRequest) (int64, error)
	Update(ctx context.Context, id int64, fields map[string]string) error
	MonthlyCounts(ctx context.Context, keyword string, months int) ([]models.MonthlyCount, error)
}

// ProfileRepository resolves candidate profiles for score enrichment.
type ProfileRepository interface {
	ProfileByEmail(ctx context.Context, email string) (models.CandidateProfile, error)
}

// Translations is the slice of the translation service the listing flow
// uses.
type Translations interface {
	TranslateJob(ctx context.Context, job models.JobPosting) (models.JobPosting, error)
	TranslatePage(ctx context.Context, jobs []models.JobPosting) []int64
}

// TaskQueue accepts background translation submissions.
type TaskQueue interface {
	SubmitTranslationTask(ctx context.Context, jobID int64) (string, error)
}

// ErrNoFields is returned by Update when the request carries nothing to
// change.
var ErrNoFields = errors.New("no updatable fields provided")

// Service implements the posting surfaces.
type Service struct {
	repo         Repository
	profiles     ProfileRepository
	translations Translations
	queue        TaskQueue
	logger       logging.Logger
}

// NewService wires the posting service. queue may be nil in tests.
func NewService(repo Repository, profiles ProfileRepository, translations Translations, queue TaskQueue) *Service {
	return &Service{
		repo:         repo,
		profiles:     profiles,
		translations: translations,
		queue:        queue,
		logger:       logging.GetGlobalLogger(),
	}
}

// List serves one filtered, sorted page of live postings. Arabic requests
// translate the page's pending postings before serving; when an email is
// given, postings already ranked for that candidate are excluded and the
// rest carry a match score.
func (s *Service) List(ctx context.Context, params models.ListJobsParams) (*models.JobListResponse, error) {
	params.Normalize()

	filters := store.ListFilters{
		Search:     params.Search,
		Location:   params.Location,
		Experience: params.Experience,
		Attendance: params.Attendance,
		Email:      params.Email,
		Arabic:     params.Locale == models.LocaleArabic,
		Sort:       params.Sort,
		Limit:      params.Limit,
		Offset:     params.Offset(),
	}

	postings, total, err := s.repo.Search(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	if params.Locale == models.LocaleArabic && s.translations != nil {
		// Translate what this page needs, then refetch the translated rows by
		// id so the served fields are the stored ones. Refetching by id keeps
		// the page stable; a fresh filtered search could drop a row whose new
		// Arabic columns no longer match. A failed refetch keeps the
		// in-memory translation.
		if ids := s.translations.TranslatePage(ctx, postings); len(ids) > 0 {
			index := make(map[int64]int, len(postings))
			for i, posting := range postings {
				index[posting.ID] = i
			}
			for _, id := range ids {
				i, ok := index[id]
				if !ok {
					continue
				}
				fresh, err := s.repo.GetByID(ctx, id)
				if err != nil {
					s.logger.WithFields(map[string]interface{}{
						"job_id": id,
						"error":  err.Error(),
					}).Warn("Refetch after translation failed, serving in-memory translation")
					continue
				}
				postings[i] = fresh
			}
		}
	}

	profile, hasProfile := s.lookupProfile(ctx, params.Email)

	resolved := make([]models.ResolvedJob, 0, len(postings))
	for _, posting := range postings {
		item := translation.ResolveJob(posting, params.Locale)
		if hasProfile {
			score := matching.Percentage(posting, profile)
			item.MatchScore = &score
		}
		resolved = append(resolved, item)
	}

	return &models.JobListResponse{
		Success:    true,
		Jobs:       resolved,
		Pagination: models.NewPagination(total, params.Page, params.Limit),
	}, nil
}

// Get serves one posting in the requested locale. An Arabic read of a
// pending posting translates it synchronously within the provider timeout;
// on failure the English fields are served instead.
func (s *Service) Get(ctx context.Context, id int64, locale models.Locale) (*models.JobResponse, error) {
	posting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if locale == models.LocaleArabic && !posting.TranslationStatus.IsCompleted() && s.translations != nil {
		translated, err := s.translations.TranslateJob(ctx, posting)
		if err != nil {
			s.logger.WithFields(map[string]interface{}{
				"job_id": id,
				"error":  err.Error(),
			}).Warn("Synchronous translation failed, serving English fields")
		} else {
			posting = translated
		}
	}

	return &models.JobResponse{
		Success:  true,
		Job:      translation.ResolveJob(posting, locale),
		Language: locale,
	}, nil
}

// Create inserts a posting and queues its Arabic translation in the
// background. A full queue only delays translation until the first Arabic
// read, so submission failures are absorbed.
func (s *Service) Create(ctx context.Context, req models.CreateJobRequest) (*models.CreateJobResponse, error) {
	id, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.queueTranslation(ctx, id)

	return &models.CreateJobResponse{
		Success: true,
		Message: "Job created successfully",
		JobID:   id,
	}, nil
}

// Update applies a partial edit. Edits touching localized columns reset
// the translation state and queue a fresh background translation.
func (s *Service) Update(ctx context.Context, id int64, req models.UpdateJobRequest) (*models.UpdateJobResponse, error) {
	fields := req.Fields()
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}

	for column := range fields {
		if store.IsLocalizedColumn(column) {
			s.queueTranslation(ctx, id)
			break
		}
	}

	return &models.UpdateJobResponse{
		Success: true,
		Message: "Job updated successfully",
	}, nil
}

// monthlyWindow is the number of months the demand histogram covers,
// current month included.
const monthlyWindow = 12

// MonthlyCounts buckets description matches for the keyword by month over
// the trailing year. The series is continuous: months without a match
// appear with a zero count, oldest first.
func (s *Service) MonthlyCounts(ctx context.Context, keyword string) (*models.MonthlyCountResponse, error) {
	counts, err := s.repo.MonthlyCounts(ctx, keyword, monthlyWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly counts: %w", err)
	}

	byMonth := make(map[string]int, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c.Count
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthlyWindow - 1), 0)

	series := make([]models.MonthlyCount, 0, monthlyWindow)
	for i := 0; i < monthlyWindow; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		series = append(series, models.MonthlyCount{Month: month, Count: byMonth[month]})
	}

	return &models.MonthlyCountResponse{
		Success:       true,
		MonthlyCounts: series,
	}, nil
}

func (s *Service) lookupProfile(ctx context.Context, email string) (models.CandidateProfile, bool) {
	if email == "" || s.profiles == nil {
		return models.CandidateProfile{}, false
	}

	profile, err := s.profiles.ProfileByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return models.CandidateProfile{}, false
	}
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"email": email,
			"error": err.Error(),
		}).Warn("Profile lookup failed, serving jobs without match scores")
		return models.CandidateProfile{}, false
	}
	return profile, true
}

func (s *Service) queueTranslation(ctx context.Context, id int64) {
	if s.queue == nil {
		return
	}

	if processID, err := s.queue.SubmitTranslationTask(ctx, id); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"job_id": id,
			"error":  err.Error(),
		}).Warn("Failed to queue background translation")
	} else {
		s.logger.WithFields(map[string]interface{}{
			"job_id":     id,
			"process_id": processID,
		}).Debug("Queued background translation")
	}
}
