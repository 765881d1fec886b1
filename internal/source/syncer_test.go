package source_test

import (
	"context"
	"testing"

	"jobmate/radar-service/internal/catalog"
	"jobmate/radar-service/internal/model"
	"jobmate/radar-service/internal/runlog"
	"jobmate/radar-service/internal/source"
)

// ── Syncer — per-source isolation and run record ───────────────────────────

func TestSyncer_SourceFailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemStore()
	runs := runlog.NewMemStore()
	fetcher := &fakeFetcher{
		batches: map[string][]source.Posting{
			"healthy": {posting("1", "Property Manager")},
		},
		errs: map[string]error{
			"flaky": &source.TransientError{Err: context.DeadlineExceeded},
		},
	}
	adapter := source.NewAdapter(store, fetcher, nil)
	syncer := source.NewSyncer(adapter, runs, nil, []string{"flaky", "healthy"}, 2)

	run, err := syncer.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}

	jobs, _ := store.List(ctx, catalog.Query{Source: "healthy"})
	if len(jobs) != 1 {
		t.Fatalf("healthy source should have synced despite flaky failing, got %d rows", len(jobs))
	}

	if run.Status != model.RunPartial {
		t.Errorf("run status = %q, want partial", run.Status)
	}
	if run.Errors != 1 {
		t.Errorf("run errors = %d, want 1", run.Errors)
	}
	if run.Processed != 2 {
		t.Errorf("run processed = %d, want 2", run.Processed)
	}
	if run.FinishedAt == nil {
		t.Error("run must be finalized")
	}

	stored, ok := runs.Get(run.ID)
	if !ok || stored.FinishedAt == nil {
		t.Error("finalized run record should be persisted")
	}
}

func TestSyncer_CleanRun(t *testing.T) {
	ctx := context.Background()
	fetcher := &fakeFetcher{batches: map[string][]source.Posting{
		"boards": {posting("1", "Property Manager"), posting("2", "Leasing Agent")},
	}}
	adapter := source.NewAdapter(catalog.NewMemStore(), fetcher, nil)
	syncer := source.NewSyncer(adapter, runlog.NewMemStore(), nil, []string{"boards"}, 1)

	run, err := syncer.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != model.RunOK {
		t.Errorf("run status = %q, want ok", run.Status)
	}
	if run.Queued != 2 {
		t.Errorf("run queued = %d, want 2", run.Queued)
	}
}

// ── Classify ───────────────────────────────────────────────────────────────

func TestClassify(t *testing.T) {
	cases := map[string]error{
		"transient":      &source.TransientError{Err: context.DeadlineExceeded},
		"malformed":      &source.MalformedError{Err: context.Canceled},
		"unknown_source": source.ErrUnknownSource,
	}
	for want, err := range cases {
		if got := source.Classify(err); got != want {
			t.Errorf("Classify(%v) = %q, want %q", err, got, want)
		}
	}
}
