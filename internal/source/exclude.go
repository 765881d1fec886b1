package source

import "strings"

// Excluded returns true if any configured exclusion keyword appears
// (case-insensitive) anywhere in the posting title.
//
// Checked before normalization — excluded postings are counted, never persisted.
func Excluded(title string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
