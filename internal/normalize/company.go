package normalize

import "strings"

// companyOverrides pins display names that the generic rules would mangle.
// Keys are case/space-insensitive (see overrideKey).
var companyOverrides = map[string]string{
	"ibm":              "IBM",
	"at&t":             "AT&T",
	"ups":              "UPS",
	"jpmorganchase&co": "JPMorgan Chase",
	"mcdonald's":       "McDonald's",
}

// legalSuffixes are trailing corporate-form tokens stripped from names.
var legalSuffixes = map[string]bool{
	"llc": true, "inc": true, "ltd": true, "lp": true, "reit": true,
}

// NormalizeCompany produces a display name from a raw company string. The
// override table is consulted first; otherwise legal suffixes are stripped
// and the remainder is title-cased, preserving 2-3 letter all-caps acronyms.
// The result is presentation only and never feeds the identity key.
func NormalizeCompany(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if display, ok := companyOverrides[overrideKey(raw)]; ok {
		return display
	}

	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		trimmed := strings.Trim(tok, ".,")
		if trimmed == "" {
			continue
		}
		if legalSuffixes[strings.ToLower(trimmed)] {
			continue
		}
		out = append(out, titleToken(trimmed))
	}
	if len(out) == 0 {
		return raw
	}
	return strings.Join(out, " ")
}

// overrideKey lowers the name and drops all whitespace, so "J P Morgan" and
// "jpmorgan" hit the same override entry.
func overrideKey(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if r != ' ' && r != '\t' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// titleToken title-cases one token, keeping short all-caps acronyms intact.
func titleToken(tok string) string {
	if len(tok) >= 2 && len(tok) <= 3 && tok == strings.ToUpper(tok) && tok != strings.ToLower(tok) {
		return tok
	}
	lower := strings.ToLower(tok)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
