// Package alert implements saved-search matching and notification delivery:
// the pure predicate, the alert run coordinator with its dedup ledger, and
// the dispatcher that turns queued deliveries into outbound notifications.
package alert

import (
	"strings"

	"jobmate/radar-service/internal/model"
)

// Matches reports whether a catalog entry satisfies a saved-search filter.
// Every set field narrows with AND semantics; an unset field is a wildcard.
// Pure function, shared by the coordinator and callable from the UI layer.
func Matches(job model.Job, f model.Filter) bool {
	if f.Region != "" {
		if job.Region == nil || *job.Region != f.Region {
			return false
		}
	}
	if f.Source != "" && job.Source != f.Source {
		return false
	}
	if f.Company != "" && !containsFold(job.Company, f.Company) {
		return false
	}
	if f.Query != "" && !containsFold(queryHaystack(job), f.Query) {
		return false
	}
	if f.RemoteOnly && !containsFold(locationText(job), "remote") {
		return false
	}
	// Boolean flag only; the textual pay heuristics stay out of filtering so
	// the predicate is deterministic.
	if f.PayOnly && !job.HasPay {
		return false
	}
	return true
}

func queryHaystack(job model.Job) string {
	return job.Title + " " + job.Company + " " + locationText(job)
}

func locationText(job model.Job) string {
	parts := []string{job.LocationRaw}
	if job.City != nil {
		parts = append(parts, *job.City)
	}
	if job.Region != nil {
		parts = append(parts, *job.Region)
	}
	return strings.Join(parts, " ")
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
