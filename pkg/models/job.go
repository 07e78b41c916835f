package models

// TranslationStatus gates whether the Arabic columns of a posting are
// trustworthy. The transition is one-way: pending -> completed.
type TranslationStatus string

const (
	TranslationPending   TranslationStatus = "pending"
	TranslationCompleted TranslationStatus = "completed"
)

// IsCompleted reports whether the Arabic fields are authoritative.
func (s TranslationStatus) IsCompleted() bool {
	return s == TranslationCompleted
}

// Locale selects which language variant of a posting is served.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleArabic  Locale = "ar"
)

// ParseLocale normalizes a lang query parameter, falling back to English
// for anything unrecognized.
func ParseLocale(s string) Locale {
	if s == string(LocaleArabic) {
		return LocaleArabic
	}
	return LocaleEnglish
}

// JobPosting is a row of the job corpus. The English columns are always
// populated; the Arabic counterparts stay nil until a translation completes.
type JobPosting struct {
	ID          int64  `json:"id"`
	Entity      string `json:"entity"`
	Nationality string `json:"nationality"`
	Gender      string `json:"gender"`

	JobTitle              string `json:"job_title"`
	JobDescription        string `json:"job_description"`
	AcademicQualification string `json:"academic_qualification"`
	Experience            string `json:"experience"`
	Languages             string `json:"languages"`
	Salary                string `json:"salary"`
	VacancyCity           string `json:"vacancy_city"`
	WorkingHours          string `json:"working_hours"`
	WorkingDays           string `json:"working_days"`
	CompanyName           string `json:"company_name"`

	JobTitleAr              *string `json:"job_title_ar,omitempty"`
	JobDescriptionAr        *string `json:"job_description_ar,omitempty"`
	AcademicQualificationAr *string `json:"academic_qualification_ar,omitempty"`
	ExperienceAr            *string `json:"experience_ar,omitempty"`
	LanguagesAr             *string `json:"languages_ar,omitempty"`
	SalaryAr                *string `json:"salary_ar,omitempty"`
	VacancyCityAr           *string `json:"vacancy_city_ar,omitempty"`
	WorkingHoursAr          *string `json:"working_hours_ar,omitempty"`
	WorkingDaysAr           *string `json:"working_days_ar,omitempty"`
	CompanyNameAr           *string `json:"company_name_ar,omitempty"`

	ApplicationEmail  string            `json:"application_email"`
	JobDate           string            `json:"job_date"`
	Phone             string            `json:"phone"`
	Source            string            `json:"source"`
	ApplyURL          string            `json:"apply_url"`
	WebsiteURL        string            `json:"website_url"`
	JobType           string            `json:"job_type"`
	TranslationStatus TranslationStatus `json:"translation_status"`
}

// TranslatedFields carries the Arabic renditions of the ten localized
// posting columns as produced by a translation provider.
type TranslatedFields struct {
	JobTitle              string `json:"job_title"`
	JobDescription        string `json:"job_description"`
	AcademicQualification string `json:"academic_qualification"`
	Experience            string `json:"experience"`
	Languages             string `json:"languages"`
	Salary                string `json:"salary"`
	VacancyCity           string `json:"vacancy_city"`
	WorkingHours          string `json:"working_hours"`
	WorkingDays           string `json:"working_days"`
	CompanyName           string `json:"company_name"`
}

// ResolvedJob is the locale-resolved view of a posting returned by the
// listing and single-posting surfaces. MatchScore is nil when no candidate
// profile was available to score against.
type ResolvedJob struct {
	ID          int64  `json:"id"`
	Entity      string `json:"entity"`
	Nationality string `json:"nationality"`
	Gender      string `json:"gender"`

	JobTitle              string `json:"job_title"`
	JobDescription        string `json:"job_description"`
	AcademicQualification string `json:"academic_qualification"`
	Experience            string `json:"experience"`
	Languages             string `json:"languages"`
	Salary                string `json:"salary"`
	VacancyCity           string `json:"vacancy_city"`
	WorkingHours          string `json:"working_hours"`
	WorkingDays           string `json:"working_days"`
	CompanyName           string `json:"company_name"`

	ApplicationEmail  string            `json:"application_email"`
	JobDate           string            `json:"job_date"`
	Phone             string            `json:"phone"`
	Source            string            `json:"source"`
	ApplyURL          string            `json:"apply_url"`
	WebsiteURL        string            `json:"website_url"`
	JobType           string            `json:"job_type"`
	TranslationStatus TranslationStatus `json:"translation_status"`

	MatchScore *float64 `json:"match_score"`
}

// CandidateProfile is the slice of a client record the matching engine
// reads. Owned and mutated by the profile service; read-only here.
type CandidateProfile struct {
	ClientID  string `json:"client_id"`
	Email     string `json:"email"`
	Positions string `json:"positions"`
	Skills    string `json:"skills"`
	Location  string `json:"location"`
}

// RankingRecord is a persisted (candidate, job) evaluation written by the
// matching workflow. This service only reads them.
type RankingRecord struct {
	JobID               string  `json:"job_id"`
	JobTitle            string  `json:"job_title"`
	JobApplicationEmail string  `json:"job_application_email"`
	JobDescription      string  `json:"job_description"`
	Status              string  `json:"status"`
	Score               float64 `json:"score"`
}

// AppliedJob is a ranking row with status "applied" joined with corpus
// columns for display.
type AppliedJob struct {
	JobTitle   string `json:"job_title"`
	JobID      string `json:"job_id"`
	Status     string `json:"status"`
	Location   string `json:"location"`
	Applied    string `json:"applied"`
	Experience string `json:"experience"`
	Company    string `json:"company"`
}

// MonthlyCount is one bucket of the keyword demand histogram.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}
