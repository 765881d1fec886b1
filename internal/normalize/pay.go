package normalize

import (
	"regexp"
	"strings"
)

// PayMentioned is the generic marker returned when compensation is clearly
// discussed but no structured pattern matched.
const PayMentioned = "pay mentioned"

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)

	// Structured pay matchers, tried strictly in this order. The first hit
	// is returned verbatim (trimmed, whitespace-collapsed).
	payRange = regexp.MustCompile(
		`[$£€]\s?\d[\d,]*(?:\.\d+)?[kK]?\s*(?:-|–|to)\s*[$£€]?\s?\d[\d,]*(?:\.\d+)?[kK]?`)
	paySingle = regexp.MustCompile(
		`[$£€]\s?\d[\d,]*(?:\.\d+)?[kK]?\s*(?:per\s+(?:year|annum|month|week)|/\s?(?:yr|year|mo|month)|annually|a\s+year)`)
	payHourly = regexp.MustCompile(
		`[$£€]\s?\d[\d,]*(?:\.\d+)?\s*(?:per\s+hour|/\s?(?:hr|hour)|an\s+hour|hourly)`)

	payKeywords = []string{"salary", "pay", "compensation", "hour", "year"}
)

// ExtractPay scans the combined title+location+description text for a pay
// signal. Returns the extracted snippet and true on any signal; empty string
// and false otherwise. Best effort only — never authoritative.
func ExtractPay(title, location, description string) (string, bool) {
	combined := stripMarkup(title + " " + location + " " + description)

	for _, matcher := range []*regexp.Regexp{payRange, paySingle, payHourly} {
		if m := matcher.FindString(combined); m != "" {
			return collapseSpace(m), true
		}
	}

	// No structured match: a currency symbol next to compensation language
	// still counts as a signal, just without an extractable figure.
	if strings.ContainsAny(combined, "$£€") && containsPayKeyword(combined) {
		return PayMentioned, true
	}
	return "", false
}

func containsPayKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range payKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// stripMarkup drops HTML-ish tags so pay figures split across markup still
// land in one scannable line.
func stripMarkup(s string) string {
	return collapseSpace(tagPattern.ReplaceAllString(s, " "))
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}
