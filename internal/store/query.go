package store

import (
	"fmt"
	"strings"

	"tabashir-engine/pkg/models"
)

// Emirates whose postings the listing surface serves. Everything else in
// the corpus is scraped noise and stays hidden.
var servedEmirates = []string{
	"abu dhabi",
	"dubai",
	"sharjah",
	"ajman",
	"umm al quwain",
	"ras al khaimah",
	"fujairah",
}

// jobColumns is the scan order shared by every posting SELECT. English
// columns are coalesced so legacy NULLs scan as empty strings; Arabic
// columns stay nullable.
const jobColumns = `id,
	COALESCE(entity, ''), COALESCE(nationality, ''), COALESCE(gender, ''),
	COALESCE(job_title, ''), COALESCE(job_description, ''),
	COALESCE(academic_qualification, ''), COALESCE(experience, ''),
	COALESCE(languages, ''), COALESCE(salary, ''), COALESCE(vacancy_city, ''),
	COALESCE(working_hours, ''), COALESCE(working_days, ''), COALESCE(company_name, ''),
	job_title_ar, job_description_ar, academic_qualification_ar, experience_ar,
	languages_ar, salary_ar, vacancy_city_ar, working_hours_ar,
	working_days_ar, company_name_ar,
	COALESCE(application_email, ''), COALESCE(job_date, ''), COALESCE(phone, ''),
	COALESCE(source, ''), COALESCE(apply_url, ''), COALESCE(website_url, ''),
	COALESCE(job_type, ''), COALESCE(translation_status, 'pending')`

// ListFilters are the resolved inputs of a listing query. Arabic switches
// the text filters to the translated columns (falling back to English per
// column when no translation exists yet).
type ListFilters struct {
	Search     string
	Location   string
	Experience string
	Attendance string
	Email      string
	Arabic     bool
	Sort       models.SortKey
	Limit      int
	Offset     int
}

// BuildListQuery renders the paginated listing SELECT and its positional
// arguments.
func BuildListQuery(f ListFilters) (string, []interface{}) {
	where, args := buildWhere(f)

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM jobs WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d",
		jobColumns, where, orderClause(f.Sort), len(args)-1, len(args),
	)
	return query, args
}

// BuildCountQuery renders the total-row count for the same filter set.
func BuildCountQuery(f ListFilters) (string, []interface{}) {
	where, args := buildWhere(f)
	return "SELECT COUNT(*) FROM jobs WHERE " + where, args
}

func buildWhere(f ListFilters) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	// Scraped dates are text and sometimes literally 'Nan'; NULLIF keeps the
	// cast from blowing up. Only postings from the last two months are live.
	conditions = append(conditions,
		"NULLIF(job_date, 'Nan')::date >= (CURRENT_DATE - INTERVAL '2 months')")

	var cityConds []string
	for _, emirate := range servedEmirates {
		cityConds = append(cityConds, "vacancy_city ILIKE "+arg("%"+emirate+"%"))
	}
	conditions = append(conditions, "("+strings.Join(cityConds, " OR ")+")")

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE %s OR %s ILIKE %s)",
			localized("job_title", f.Arabic), arg(pattern),
			localized("job_description", f.Arabic), arg(pattern)))
	}

	if f.Location != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(%s) = LOWER(%s)",
			localized("vacancy_city", f.Arabic), arg(f.Location)))
	}

	if f.Experience != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(%s) = LOWER(%s)",
			localized("experience", f.Arabic), arg(f.Experience)))
	}

	// Attendance (remote, hybrid, onsite) lives in the description text,
	// not in a dedicated column.
	if f.Attendance != "" {
		conditions = append(conditions,
			localized("job_description", f.Arabic)+" ILIKE "+arg("%"+f.Attendance+"%"))
	}

	// Postings already evaluated for this candidate are excluded so the feed
	// only surfaces jobs the ranking pipeline has not processed yet.
	if f.Email != "" {
		conditions = append(conditions, fmt.Sprintf(
			"jobs.id::text NOT IN (SELECT r.job_id FROM rankings r JOIN clients c ON r.client_id = c.client_id WHERE LOWER(c.email) = LOWER(%s))",
			arg(f.Email)))
	}

	return strings.Join(conditions, " AND "), args
}

// localized picks the Arabic column with an English fallback so filters
// keep working for postings whose translation has not completed.
func localized(column string, arabic bool) string {
	if arabic {
		return fmt.Sprintf("COALESCE(%s_ar, %s)", column, column)
	}
	return column
}

func orderClause(sort models.SortKey) string {
	// Salary is free text; the leading digit run is the only sortable part.
	// Rows without one sort last, and id keeps the order stable.
	const salaryExpr = `NULLIF(substring(salary from '\d+'), '')::bigint`
	const dateExpr = `NULLIF(job_date, 'Nan')::date`

	switch sort {
	case models.SortDateAsc:
		return dateExpr + " ASC NULLS LAST, id ASC"
	case models.SortSalaryDesc:
		return salaryExpr + " DESC NULLS LAST, id ASC"
	case models.SortSalaryAsc:
		return salaryExpr + " ASC NULLS LAST, id ASC"
	default:
		return dateExpr + " DESC NULLS LAST, id ASC"
	}
}
