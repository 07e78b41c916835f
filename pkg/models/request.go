package models

// SortKey enumerates the supported listing sort orders.
type SortKey string

const (
	SortDateDesc   SortKey = "job_date_desc"
	SortDateAsc    SortKey = "job_date_asc"
	SortSalaryDesc SortKey = "salary_desc"
	SortSalaryAsc  SortKey = "salary_asc"
)

// ParseSortKey normalizes a sort query parameter; anything unrecognized
// falls back to newest-first.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortDateAsc, SortSalaryDesc, SortSalaryAsc:
		return SortKey(s)
	default:
		return SortDateDesc
	}
}

// DefaultPageLimit applies when the limit parameter is absent or unusable.
const DefaultPageLimit = 15

// ListJobsParams are the normalized inputs of a listing call. Email is the
// optional candidate identity used for ranking exclusion and score
// enrichment.
type ListJobsParams struct {
	Email      string
	Search     string
	Location   string
	Experience string
	Attendance string
	Sort       SortKey
	Locale     Locale
	Page       int
	Limit      int
}

// Normalize corrects pagination to defaults instead of rejecting bad input.
func (p *ListJobsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Sort == "" {
		p.Sort = SortDateDesc
	}
	if p.Locale == "" {
		p.Locale = LocaleEnglish
	}
}

// Offset returns the row offset for the current page.
func (p ListJobsParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// CreateJobRequest is the admin posting-creation payload. Only the English
// field set is accepted; Arabic columns are filled by translation.
type CreateJobRequest struct {
	Entity                string `json:"entity" validate:"required"`
	Nationality           string `json:"nationality"`
	Gender                string `json:"gender" validate:"required"`
	JobTitle              string `json:"job_title" validate:"required"`
	AcademicQualification string `json:"academic_qualification"`
	Experience            string `json:"experience"`
	Languages             string `json:"languages"`
	Salary                string `json:"salary"`
	VacancyCity           string `json:"vacancy_city"`
	WorkingHours          string `json:"working_hours"`
	WorkingDays           string `json:"working_days"`
	ApplicationEmail      string `json:"application_email"`
	JobDescription        string `json:"job_description" validate:"required"`
	JobDate               string `json:"job_date" validate:"required,datetime=2006-01-02"`
	Phone                 string `json:"phone"`
	Source                string `json:"source"`
	ApplyURL              string `json:"apply_url"`
	CompanyName           string `json:"company_name"`
	WebsiteURL            string `json:"website_url"`
	JobType               string `json:"job_type"`
}

// UpdateJobRequest is a partial edit of the English field set. Nil means
// "leave unchanged"; binding rejects non-string values at the boundary.
type UpdateJobRequest struct {
	Entity                *string `json:"entity"`
	Nationality           *string `json:"nationality"`
	Gender                *string `json:"gender"`
	JobTitle              *string `json:"job_title"`
	AcademicQualification *string `json:"academic_qualification"`
	Experience            *string `json:"experience"`
	Languages             *string `json:"languages"`
	Salary                *string `json:"salary"`
	VacancyCity           *string `json:"vacancy_city"`
	WorkingHours          *string `json:"working_hours"`
	WorkingDays           *string `json:"working_days"`
	ApplicationEmail      *string `json:"application_email"`
	JobDescription        *string `json:"job_description"`
	JobDate               *string `json:"job_date" validate:"omitempty,datetime=2006-01-02"`
	Phone                 *string `json:"phone"`
	Source                *string `json:"source"`
	ApplyURL              *string `json:"apply_url"`
	CompanyName           *string `json:"company_name"`
	WebsiteURL            *string `json:"website_url"`
	JobType               *string `json:"job_type"`
}

// Fields flattens the supplied values into a column -> value map for the
// store layer. An empty map means there is nothing to update.
func (r UpdateJobRequest) Fields() map[string]string {
	out := make(map[string]string)
	set := func(column string, v *string) {
		if v != nil {
			out[column] = *v
		}
	}
	set("entity", r.Entity)
	set("nationality", r.Nationality)
	set("gender", r.Gender)
	set("job_title", r.JobTitle)
	set("academic_qualification", r.AcademicQualification)
	set("experience", r.Experience)
	set("languages", r.Languages)
	set("salary", r.Salary)
	set("vacancy_city", r.VacancyCity)
	set("working_hours", r.WorkingHours)
	set("working_days", r.WorkingDays)
	set("application_email", r.ApplicationEmail)
	set("job_description", r.JobDescription)
	set("job_date", r.JobDate)
	set("phone", r.Phone)
	set("source", r.Source)
	set("apply_url", r.ApplyURL)
	set("company_name", r.CompanyName)
	set("website_url", r.WebsiteURL)
	set("job_type", r.JobType)
	return out
}

// MatchedJobsParams are the normalized inputs of a ranked-match retrieval.
type MatchedJobsParams struct {
	Email string
	Page  int
	Limit int
}

// Normalize applies the same pagination defaults as the listing surface.
func (p *MatchedJobsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
}

// Offset returns the row offset for the current page.
func (p MatchedJobsParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
