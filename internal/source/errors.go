// Package source implements posting ingestion: per-source fetching with
// candidate endpoints, exclusion filtering, normalization and handoff to the
// catalog. One source's failure never aborts the overall sync.
package source

import (
	"errors"
	"fmt"
)

// ErrUnknownSource is returned for a source identifier with no configured
// endpoints, and for feeds that answer 404 on every candidate.
var ErrUnknownSource = fmt.Errorf("unknown source")

// TransientError wraps a network or timeout failure. The source is skipped
// for this run and retried on the next cycle.
type TransientError struct{ Err error }

func (e *TransientError) Error() string { return fmt.Sprintf("transient fetch error: %v", e.Err) }
func (e *TransientError) Unwrap() error { return e.Err }

// MalformedError wraps a response that arrived but was not in the expected
// shape. Logged distinctly from a plain not-found so feed format breakage is
// visible to operators.
type MalformedError struct{ Err error }

func (e *MalformedError) Error() string { return fmt.Sprintf("malformed source response: %v", e.Err) }
func (e *MalformedError) Unwrap() error { return e.Err }

// PersistenceError wraps a catalog write failure. The adapter aborts the
// source's remaining writes and skips its staleness sweep, since sweeping a
// partially committed batch would falsely retire live postings.
type PersistenceError struct{ Err error }

func (e *PersistenceError) Error() string { return fmt.Sprintf("catalog persistence error: %v", e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// Classify names an error class for log lines and run counters.
func Classify(err error) string {
	var (
		te *TransientError
		me *MalformedError
		pe *PersistenceError
	)
	switch {
	case errors.As(err, &te):
		return "transient"
	case errors.As(err, &me):
		return "malformed"
	case errors.As(err, &pe):
		return "persistence"
	case errors.Is(err, ErrUnknownSource):
		return "unknown_source"
	}
	return "error"
}
