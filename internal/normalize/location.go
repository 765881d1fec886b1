// Package normalize implements the pure text normalizers applied to raw
// postings before they reach the catalog: location parsing, company display
// names and pay extraction. No I/O happens here.
package normalize

import (
	"sort"
	"strings"
	"unicode"
)

// Location is the structured result of parsing a free-text location. Raw is
// always preserved unmodified; City and Region stay nil when parsing fails.
type Location struct {
	Raw    string
	City   *string
	Region *string // 2-letter code
	Remote bool
}

// regionCodes holds the valid 2-letter region codes, including DC.
var regionCodes = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "DC": true, "FL": true, "GA": true, "HI": true,
	"ID": true, "IL": true, "IN": true, "IA": true, "KS": true, "KY": true,
	"LA": true, "ME": true, "MD": true, "MA": true, "MI": true, "MN": true,
	"MS": true, "MO": true, "MT": true, "NE": true, "NV": true, "NH": true,
	"NJ": true, "NM": true, "NY": true, "NC": true, "ND": true, "OH": true,
	"OK": true, "OR": true, "PA": true, "RI": true, "SC": true, "SD": true,
	"TN": true, "TX": true, "UT": true, "VT": true, "VA": true, "WA": true,
	"WV": true, "WI": true, "WY": true,
}

// regionNames maps lowercase full region names to their 2-letter code.
var regionNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT",
	"delaware": "DE", "district of columbia": "DC", "florida": "FL",
	"georgia": "GA", "hawaii": "HI", "idaho": "ID", "illinois": "IL",
	"indiana": "IN", "iowa": "IA", "kansas": "KS", "kentucky": "KY",
	"louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT", "nebraska": "NE",
	"nevada": "NV", "new hampshire": "NH", "new jersey": "NJ",
	"new mexico": "NM", "new york": "NY", "north carolina": "NC",
	"north dakota": "ND", "ohio": "OH", "oklahoma": "OK", "oregon": "OR",
	"pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA",
	"west virginia": "WV", "wisconsin": "WI", "wyoming": "WY",
}

// ParseLocation extracts a city and 2-letter region code from unstructured
// location text. Matchers run in a fixed priority order and a later matcher
// never overrides an earlier successful one:
//
//  1. "remote" anywhere in the text wins outright (nil region).
//  2. A 2-letter region code token, scanned from the end of the text.
//  3. A full region name from the dictionary, scanned from the end.
//  4. The city is the nearest preceding comma segment that does not look
//     like a street address.
//
// When no region can be determined, both structured fields stay nil and the
// raw text is preserved as-is.
func ParseLocation(raw string) Location {
	loc := Location{Raw: raw}
	text := strings.TrimSpace(raw)
	if text == "" {
		return loc
	}

	if strings.Contains(strings.ToLower(text), "remote") {
		loc.Remote = true
		return loc
	}

	segments := splitSegments(text)

	segIdx, tokIdx, code, ok := matchRegionCode(segments)
	if !ok {
		segIdx, tokIdx, code, ok = matchRegionName(segments)
	}
	if !ok {
		return loc
	}

	loc.Region = &code
	if city, ok := pickCity(segments, segIdx, tokIdx); ok {
		loc.City = &city
	}
	return loc
}

// splitSegments breaks the text on commas into trimmed, non-empty segments.
func splitSegments(text string) []string {
	parts := strings.Split(text, ",")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// matchRegionCode scans segments (and tokens within a segment) back to front
// for a standalone 2-letter uppercase region code. Scanning from the end
// covers both "Chicago, IL" and "Boston MA 02115".
func matchRegionCode(segments []string) (segIdx, tokIdx int, code string, ok bool) {
	for i := len(segments) - 1; i >= 0; i-- {
		tokens := strings.Fields(segments[i])
		for j := len(tokens) - 1; j >= 0; j-- {
			tok := strings.Trim(tokens[j], ".;:()")
			if len(tok) == 2 && tok == strings.ToUpper(tok) && regionCodes[tok] {
				return i, j, tok, true
			}
		}
	}
	return 0, 0, "", false
}

// regionNameList orders names longest first, so "west virginia" wins over
// the embedded "virginia".
var regionNameList = func() []string {
	names := make([]string, 0, len(regionNames))
	for name := range regionNames {
		names = append(names, name)
	}
	sort.Slice(names, func(a, b int) bool { return len(names[a]) > len(names[b]) })
	return names
}()

// matchRegionName scans segments back to front for a full region name.
func matchRegionName(segments []string) (segIdx, tokIdx int, code string, ok bool) {
	for i := len(segments) - 1; i >= 0; i-- {
		seg := strings.ToLower(segments[i])
		for _, name := range regionNameList {
			if pos := indexWord(seg, name); pos >= 0 {
				// Token index of the name's first word, so a city sharing the
				// segment ("Houston Texas") is still recoverable.
				idx := len(strings.Fields(seg[:pos]))
				return i, idx, regionNames[name], true
			}
		}
	}
	return 0, 0, "", false
}

// indexWord finds name in seg on word boundaries, so "indianapolis" never
// matches "indiana".
func indexWord(seg, name string) int {
	for from := 0; from <= len(seg)-len(name); {
		pos := strings.Index(seg[from:], name)
		if pos < 0 {
			return -1
		}
		pos += from
		startOK := pos == 0 || !isLetter(seg[pos-1])
		end := pos + len(name)
		endOK := end == len(seg) || !isLetter(seg[end])
		if startOK && endOK {
			return pos
		}
		from = pos + 1
	}
	return -1
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// pickCity chooses the nearest candidate before the matched region token:
// first any tokens preceding it in the same segment, then earlier segments,
// skipping anything that looks like a street address line.
func pickCity(segments []string, segIdx, tokIdx int) (string, bool) {
	if tokIdx > 0 {
		prefix := strings.Join(strings.Fields(segments[segIdx])[:tokIdx], " ")
		if prefix != "" && !streetLike(prefix) {
			return prefix, true
		}
	}
	for i := segIdx - 1; i >= 0; i-- {
		if !streetLike(segments[i]) {
			return segments[i], true
		}
	}
	return "", false
}

// streetLike reports whether a segment looks like a street address line
// rather than a city name.
func streetLike(seg string) bool {
	seg = strings.TrimSpace(seg)
	if seg == "" {
		return true
	}
	if r := rune(seg[0]); unicode.IsDigit(r) {
		return true
	}
	lower := strings.ToLower(seg)
	for _, marker := range []string{"suite", "unit", "apt", "#"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
