package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tabashir-engine/pkg/models"
)

// JobStore reads and writes the jobs table.
type JobStore struct {
	pool *pgxpool.Pool
}

// NewJobStore creates a job store backed by the given pool.
func NewJobStore(pool *pgxpool.Pool) *JobStore {
	return &JobStore{pool: pool}
}

// scanJob scans one row in jobColumns order.
func scanJob(row pgx.Row) (models.JobPosting, error) {
	var job models.JobPosting
	var status string

	err := row.Scan(
		&job.ID,
		&job.Entity, &job.Nationality, &job.Gender,
		&job.JobTitle, &job.JobDescription,
		&job.AcademicQualification, &job.Experience,
		&job.Languages, &job.Salary, &job.VacancyCity,
		&job.WorkingHours, &job.WorkingDays, &job.CompanyName,
		&job.JobTitleAr, &job.JobDescriptionAr, &job.AcademicQualificationAr, &job.ExperienceAr,
		&job.LanguagesAr, &job.SalaryAr, &job.VacancyCityAr, &job.WorkingHoursAr,
		&job.WorkingDaysAr, &job.CompanyNameAr,
		&job.ApplicationEmail, &job.JobDate, &job.Phone,
		&job.Source, &job.ApplyURL, &job.WebsiteURL,
		&job.JobType, &status,
	)
	if err != nil {
		return job, err
	}

	job.TranslationStatus = models.TranslationStatus(status)
	return job, nil
}

// Search returns one page of postings matching the filters plus the total
// match count.
func (s *JobStore) Search(ctx context.Context, filters ListFilters) ([]models.JobPosting, int, error) {
	countQuery, countArgs := BuildCountQuery(filters)

	var total int
	if err := s.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	listQuery, listArgs := BuildListQuery(filters)
	rows, err := s.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.JobPosting
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read job rows: %w", err)
	}

	return jobs, total, nil
}

// GetByID fetches a single posting. Returns ErrNotFound when no row exists.
func (s *JobStore) GetByID(ctx context.Context, id int64) (models.JobPosting, error) {
	query := fmt.Sprintf("SELECT %s FROM jobs WHERE id = $1", jobColumns)

	job, err := scanJob(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return job, ErrNotFound
	}
	if err != nil {
		return job, fmt.Errorf("failed to fetch job %d: %w", id, err)
	}
	return job, nil
}

// Create inserts a posting. The Arabic columns start empty and
// translation_status starts pending; the background translator fills them.
func (s *JobStore) Create(ctx context.Context, req models.CreateJobRequest) (int64, error) {
	query := `INSERT INTO jobs (
		entity, nationality, gender, job_title, academic_qualification,
		experience, languages, salary, vacancy_city, working_hours,
		working_days, application_email, job_description, job_date, phone,
		source, apply_url, company_name, website_url, job_type,
		translation_status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	RETURNING id`

	var id int64
	err := s.pool.QueryRow(ctx, query,
		req.Entity, req.Nationality, req.Gender, req.JobTitle, req.AcademicQualification,
		req.Experience, req.Languages, req.Salary, req.VacancyCity, req.WorkingHours,
		req.WorkingDays, req.ApplicationEmail, req.JobDescription, req.JobDate, req.Phone,
		req.Source, req.ApplyURL, req.CompanyName, req.WebsiteURL, req.JobType,
		string(models.TranslationPending),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert job: %w", err)
	}
	return id, nil
}

// localizedColumns are the English columns whose edits invalidate the
// stored Arabic translation.
var localizedColumns = map[string]bool{
	"job_title":              true,
	"job_description":        true,
	"academic_qualification": true,
	"experience":             true,
	"languages":              true,
	"salary":                 true,
	"vacancy_city":           true,
	"working_hours":          true,
	"working_days":           true,
	"company_name":           true,
}

// IsLocalizedColumn reports whether editing the column invalidates the
// stored Arabic translation.
func IsLocalizedColumn(column string) bool {
	return localizedColumns[column]
}

// Update applies a partial edit. Editing any localized column resets
// translation_status to pending so the next Arabic read re-translates.
// Returns ErrNotFound when the posting does not exist.
func (s *JobStore) Update(ctx context.Context, id int64, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}

	var sets []string
	var args []interface{}

	for column, value := range fields {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	invalidated := false
	for column := range fields {
		if localizedColumns[column] {
			invalidated = true
			break
		}
	}
	if invalidated {
		sets = append(sets, fmt.Sprintf("translation_status = '%s'", models.TranslationPending))
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE jobs SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTranslation stores the Arabic field set and marks the posting
// completed. Writing the same translation twice is harmless.
func (s *JobStore) SetTranslation(ctx context.Context, id int64, fields models.TranslatedFields) error {
	query := `UPDATE jobs SET
		job_title_ar = $1, job_description_ar = $2, academic_qualification_ar = $3,
		experience_ar = $4, languages_ar = $5, salary_ar = $6, vacancy_city_ar = $7,
		working_hours_ar = $8, working_days_ar = $9, company_name_ar = $10,
		translation_status = $11
	WHERE id = $12`

	tag, err := s.pool.Exec(ctx, query,
		fields.JobTitle, fields.JobDescription, fields.AcademicQualification,
		fields.Experience, fields.Languages, fields.Salary, fields.VacancyCity,
		fields.WorkingHours, fields.WorkingDays, fields.CompanyName,
		string(models.TranslationCompleted), id,
	)
	if err != nil {
		return fmt.Errorf("failed to store translation for job %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MonthlyCounts buckets postings whose description matches the keyword by
// month, oldest first. The window runs from the first day of the month
// (months-1) back through the end of the current month; months without a
// match are absent and the caller fills them in.
func (s *JobStore) MonthlyCounts(ctx context.Context, keyword string, months int) ([]models.MonthlyCount, error) {
	if months < 1 {
		months = 12
	}

	query := `SELECT to_char(NULLIF(job_date, 'Nan')::date, 'YYYY-MM') AS month, COUNT(*)
	FROM jobs
	WHERE LOWER(job_description) LIKE $1
	  AND NULLIF(job_date, 'Nan')::date >= date_trunc('month', CURRENT_DATE) - ($2 || ' months')::interval
	  AND NULLIF(job_date, 'Nan')::date < date_trunc('month', CURRENT_DATE) + interval '1 month'
	GROUP BY month
	ORDER BY month`

	rows, err := s.pool.Query(ctx, query, "%"+strings.ToLower(keyword)+"%", fmt.Sprintf("%d", months-1))
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly counts: %w", err)
	}
	defer rows.Close()

	var counts []models.MonthlyCount
	for rows.Next() {
		var c models.MonthlyCount
		if err := rows.Scan(&c.Month, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan monthly count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
