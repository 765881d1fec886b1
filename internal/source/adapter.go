package source

import (
	"context"
	"log"
	"time"

	"jobmate/radar-service/internal/catalog"
	"jobmate/radar-service/internal/model"
	"jobmate/radar-service/internal/normalize"
)

// Adapter runs the full ingestion path for a single source: fetch, validate,
// filter exclusions, normalize, upsert, then sweep stale entries.
type Adapter struct {
	store   catalog.Store
	fetcher Fetcher
	exclude []string
}

// NewAdapter constructs an Adapter.
func NewAdapter(store catalog.Store, fetcher Fetcher, exclude []string) *Adapter {
	return &Adapter{store: store, fetcher: fetcher, exclude: exclude}
}

// Stats counts what happened to one source's batch.
type Stats struct {
	Upserted int
	Excluded int
	Invalid  int
	Swept    int64
}

// SyncSource ingests one source's current batch. runTime stamps every upsert
// and is the sweep cutoff: the sweep only runs after the whole batch has
// committed, so a partially processed batch can never retire live postings.
// On a catalog write failure the remaining writes and the sweep are skipped
// and a PersistenceError is returned.
func (a *Adapter) SyncSource(ctx context.Context, src string, runTime time.Time) (Stats, error) {
	var stats Stats

	postings, err := a.fetcher.Fetch(ctx, src)
	if err != nil {
		return stats, err
	}

	for _, p := range postings {
		// Required fields: a posting with no title or no resolvable url is
		// skipped, the rest of the batch continues.
		if p.Title == "" || p.URL == "" {
			stats.Invalid++
			continue
		}

		if Excluded(p.Title, a.exclude) {
			stats.Excluded++
			continue
		}

		job := buildJob(src, p, runTime)
		if err := a.store.Upsert(ctx, job); err != nil {
			log.Printf("[adapter] %s: upsert %s failed, aborting batch: %v", src, job.Fingerprint, err)
			return stats, &PersistenceError{Err: err}
		}
		stats.Upserted++
	}

	swept, err := a.store.Sweep(ctx, src, runTime)
	if err != nil {
		return stats, &PersistenceError{Err: err}
	}
	stats.Swept = swept

	log.Printf("[adapter] %s done — upserted=%d excluded=%d invalid=%d swept=%d",
		src, stats.Upserted, stats.Excluded, stats.Invalid, stats.Swept)
	return stats, nil
}

// buildJob normalizes one accepted posting into a catalog entry.
func buildJob(src string, p Posting, runTime time.Time) model.Job {
	loc := normalize.ParseLocation(p.Location)
	pay, hasPay := normalize.ExtractPay(p.Title, p.Location, p.Description)

	job := model.Job{
		Fingerprint: catalog.Fingerprint(src, p.NativeID, p.URL),
		Source:      src,
		SourceID:    p.NativeID,
		Title:       p.Title,
		CompanyRaw:  p.Company,
		Company:     normalize.NormalizeCompany(p.Company),
		LocationRaw: loc.Raw,
		City:        loc.City,
		Region:      loc.Region,
		URL:         p.URL,
		Description: p.Description,
		HasPay:      hasPay,
		PostedAt:    p.UpdatedAt,
		IsActive:    true,
		LastSeenAt:  runTime,
	}
	if hasPay {
		job.PayExtracted = &pay
	}
	return job
}
