// Package processors prepares posting text for translation providers.
package processors

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Sanitizer strips markup from scraped posting fields so providers see
// plain text instead of leftover HTML.
type Sanitizer struct {
	removeTags []string
}

var whitespacePattern = regexp.MustCompile(`[ \t]+`)
var blankLinesPattern = regexp.MustCompile(`\n{3,}`)

// NewSanitizer creates a new sanitizer instance.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		removeTags: []string{
			"script", "style", "noscript", "iframe", "object", "embed",
			"form", "input", "button", "select", "textarea",
			"nav", "header", "footer", "aside",
			"svg", "meta", "link", "title", "base",
		},
	}
}

// Clean returns the plain-text content of a possibly-HTML field. Fields
// without markup pass through with only whitespace normalization.
func (s *Sanitizer) Clean(text string) string {
	if !strings.ContainsAny(text, "<>") {
		return normalizeWhitespace(text)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		// Unparseable input goes through as-is; the provider copes.
		return normalizeWhitespace(text)
	}

	for _, tag := range s.removeTags {
		doc.Find(tag).Remove()
	}

	return normalizeWhitespace(doc.Text())
}

func normalizeWhitespace(text string) string {
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = blankLinesPattern.ReplaceAllString(text, "\n\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
