package catalog

import (
	"context"
	"time"

	"jobmate/radar-service/internal/model"
)

// Query narrows a catalog read. Zero-valued fields are wildcards.
type Query struct {
	Source       string
	ActiveOnly   bool
	SeenSince    *time.Time
	Fingerprints []string
}

// Store is the catalog port. All writes are idempotent upserts keyed on
// fingerprint, so repeated or overlapping sync runs converge to the same
// state. Implementations: PGStore (production), MemStore (tests).
type Store interface {
	// Upsert inserts or refreshes one catalog entry. Every re-observation
	// rewrites all mutable fields, bumps last_seen_at and forces the entry
	// active again.
	Upsert(ctx context.Context, job model.Job) error

	// Sweep deactivates every entry of the given source whose last_seen_at
	// predates cutoff. Callers must only invoke it after the source's full
	// batch has committed, or live postings get falsely retired.
	Sweep(ctx context.Context, source string, cutoff time.Time) (int64, error)

	// Get returns the entry for a fingerprint, or ErrJobNotFound.
	Get(ctx context.Context, fingerprint string) (*model.Job, error)

	// List returns entries matching the query, newest last_seen_at first.
	List(ctx context.Context, q Query) ([]model.Job, error)
}
