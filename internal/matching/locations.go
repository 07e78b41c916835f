package matching

import "strings"

// Canonical emirate names keyed by common spellings and abbreviations seen
// in scraped postings and candidate profiles.
var citySynonyms = map[string]string{
	"abu dhabi":      "abu dhabi",
	"abudhabi":       "abu dhabi",
	"abu-dhabi":      "abu dhabi",
	"auh":            "abu dhabi",
	"ad":             "abu dhabi",
	"dubai":          "dubai",
	"dxb":            "dubai",
	"sharjah":        "sharjah",
	"shj":            "sharjah",
	"ajman":          "ajman",
	"umm al quwain":  "umm al quwain",
	"umm al-quwain":  "umm al quwain",
	"ummalquwain":    "umm al quwain",
	"uaq":            "umm al quwain",
	"ras al khaimah": "ras al khaimah",
	"ras al-khaimah": "ras al khaimah",
	"rasalkhaimah":   "ras al khaimah",
	"rak":            "ras al khaimah",
	"fujairah":       "fujairah",
	"al fujairah":    "fujairah",
}

// CanonicalCity normalizes a free-text location to a canonical emirate
// name. Unknown locations come back lowercased and trimmed so that exact
// matches still work outside the emirate list.
func CanonicalCity(location string) string {
	normalized := strings.ToLower(strings.TrimSpace(location))
	normalized = strings.Join(strings.Fields(normalized), " ")

	if canonical, ok := citySynonyms[normalized]; ok {
		return canonical
	}

	// "Dubai, UAE" or "Deira, Dubai" style values still resolve when a
	// known emirate appears as one of the comma parts.
	for _, part := range strings.Split(normalized, ",") {
		part = strings.TrimSpace(part)
		if canonical, ok := citySynonyms[part]; ok {
			return canonical
		}
	}

	return normalized
}

// LocationScore is 1 when the job and candidate resolve to the same
// canonical city, 0 otherwise. Missing values on either side score 0.
func LocationScore(jobCity, candidateLocation string) float64 {
	job := CanonicalCity(jobCity)
	candidate := CanonicalCity(candidateLocation)

	if job == "" || candidate == "" {
		return 0
	}
	if job == candidate {
		return 1
	}
	return 0
}
