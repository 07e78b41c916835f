package models_test

import (
	"testing"

	"tabashir-engine/pkg/models"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input string
		want  models.SortKey
	}{
		{"job_date_desc", models.SortDateDesc},
		{"job_date_asc", models.SortDateAsc},
		{"salary_desc", models.SortSalaryDesc},
		{"salary_asc", models.SortSalaryAsc},
		{"", models.SortDateDesc},
		{"bogus", models.SortDateDesc},
	}

	for _, tt := range tests {
		if got := models.ParseSortKey(tt.input); got != tt.want {
			t.Errorf("ParseSortKey(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		input string
		want  models.Locale
	}{
		{"ar", models.LocaleArabic},
		{"en", models.LocaleEnglish},
		{"", models.LocaleEnglish},
		{"fr", models.LocaleEnglish},
	}

	for _, tt := range tests {
		if got := models.ParseLocale(tt.input); got != tt.want {
			t.Errorf("ParseLocale(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestListJobsParamsNormalize(t *testing.T) {
	p := models.ListJobsParams{Page: -3, Limit: 0}
	p.Normalize()

	if p.Page != 1 || p.Limit != models.DefaultPageLimit {
		t.Errorf("normalized page/limit = %d/%d", p.Page, p.Limit)
	}
	if p.Sort != models.SortDateDesc || p.Locale != models.LocaleEnglish {
		t.Errorf("normalized sort/locale = %s/%s", p.Sort, p.Locale)
	}

	p2 := models.ListJobsParams{Page: 3, Limit: 10}
	p2.Normalize()
	if p2.Offset() != 20 {
		t.Errorf("Offset() = %d, want 20", p2.Offset())
	}
}

func TestUpdateJobRequestFields(t *testing.T) {
	title := "Senior Nurse"
	phone := "+971500000000"
	req := models.UpdateJobRequest{JobTitle: &title, Phone: &phone}

	fields := req.Fields()
	if len(fields) != 2 {
		t.Fatalf("fields = %v, want 2 entries", fields)
	}
	if fields["job_title"] != title || fields["phone"] != phone {
		t.Errorf("fields = %v", fields)
	}

	if got := (models.UpdateJobRequest{}).Fields(); len(got) != 0 {
		t.Errorf("empty request fields = %v", got)
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		total, page, limit int
		wantPages          int
	}{
		{0, 1, 15, 0},
		{15, 1, 15, 1},
		{16, 1, 15, 2},
		{31, 2, 15, 3},
		{15, 2, 10, 2},
	}

	for _, tt := range tests {
		got := models.NewPagination(tt.total, tt.page, tt.limit)
		if got.Pages != tt.wantPages {
			t.Errorf("NewPagination(%d, %d, %d).Pages = %d, want %d",
				tt.total, tt.page, tt.limit, got.Pages, tt.wantPages)
		}
	}
}

func TestTranslationStatus(t *testing.T) {
	if models.TranslationPending.IsCompleted() {
		t.Error("pending reported completed")
	}
	if !models.TranslationCompleted.IsCompleted() {
		t.Error("completed reported pending")
	}
}
