package processors_test

import (
	"strings"
	"testing"

	"tabashir-engine/internal/translation/processors"
)

func TestCleanPlainTextPassesThrough(t *testing.T) {
	s := processors.NewSanitizer()

	got := s.Clean("Prepare monthly   accounts and reports")
	if got != "Prepare monthly accounts and reports" {
		t.Errorf("Clean = %q", got)
	}
}

func TestCleanStripsMarkup(t *testing.T) {
	s := processors.NewSanitizer()

	html := `<div><h1>Accountant</h1><script>track()</script><p>Prepare <b>monthly</b> accounts</p></div>`
	got := s.Clean(html)

	if strings.Contains(got, "<") || strings.Contains(got, "track()") {
		t.Errorf("markup survived cleaning: %q", got)
	}
	for _, want := range []string{"Accountant", "Prepare", "monthly", "accounts"} {
		if !strings.Contains(got, want) {
			t.Errorf("Clean dropped %q: %q", want, got)
		}
	}
}

func TestCleanRemovesChromeElements(t *testing.T) {
	s := processors.NewSanitizer()

	html := `<html><head><style>.x{}</style></head><body><nav>menu</nav><p>Driver needed</p><footer>links</footer></body></html>`
	got := s.Clean(html)

	if strings.Contains(got, "menu") || strings.Contains(got, "links") || strings.Contains(got, ".x{}") {
		t.Errorf("chrome elements survived: %q", got)
	}
	if !strings.Contains(got, "Driver needed") {
		t.Errorf("content dropped: %q", got)
	}
}

func TestCleanCollapsesBlankLines(t *testing.T) {
	s := processors.NewSanitizer()

	got := s.Clean("line one\n\n\n\n\nline two")
	if got != "line one\n\nline two" {
		t.Errorf("Clean = %q", got)
	}
}
