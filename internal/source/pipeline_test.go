package source_test

import (
	"context"
	"testing"
	"time"

	"jobmate/radar-service/internal/alert"
	"jobmate/radar-service/internal/catalog"
	"jobmate/radar-service/internal/model"
	"jobmate/radar-service/internal/runlog"
	"jobmate/radar-service/internal/source"
)

// Full pipeline: sync with exclusion, then an alert cycle queuing exactly one
// delivery, then a second alert cycle that changes nothing.
func TestPipeline_SyncThenAlert(t *testing.T) {
	ctx := context.Background()
	cat := catalog.NewMemStore()
	alertStore := alert.NewMemStore()
	runs := runlog.NewMemStore()

	excluded := posting("1", "Maintenance Technician")
	wanted := posting("2", "Assistant Property Manager")
	wanted.Location = "Rockville, MD"
	fetcher := &fakeFetcher{batches: map[string][]source.Posting{
		"boards": {excluded, wanted},
	}}
	adapter := source.NewAdapter(cat, fetcher, []string{"maintenance"})
	syncer := source.NewSyncer(adapter, runs, nil, []string{"boards"}, 1)

	syncRun, err := syncer.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if syncRun.Queued != 1 {
		t.Fatalf("sync should ingest exactly 1 posting, got %d", syncRun.Queued)
	}

	alertStore.PutSubscription(model.Subscription{
		ID:         "sub-md",
		OwnerID:    "owner-1",
		OwnerEmail: "owner@example.com",
		Filter:     model.Filter{Region: "MD"},
		Enabled:    true,
	})
	coord := alert.NewCoordinator(cat, alertStore, alertStore, alertStore, runs, nil, 24*time.Hour)

	run1, err := coord.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if run1.Queued != 1 {
		t.Fatalf("first alert run queued = %d, want 1", run1.Queued)
	}
	deliveries := alertStore.Deliveries()
	if len(deliveries) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(deliveries))
	}
	wantFP := catalog.Fingerprint("boards", "2", "")
	if deliveries[0].Fingerprints[0] != wantFP {
		t.Errorf("delivery references %q, want %q", deliveries[0].Fingerprints[0], wantFP)
	}

	// No new postings, no ledger changes: rerun is a no-op apart from the
	// watermark-advanced run record.
	run2, err := coord.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if run2.Queued != 0 || run2.Errors != 0 {
		t.Errorf("rerun queued=%d errors=%d, want 0/0", run2.Queued, run2.Errors)
	}
	if got := len(alertStore.Deliveries()); got != 1 {
		t.Errorf("rerun must not add deliveries, got %d total", got)
	}
	sub, _ := alertStore.Get(ctx, "sub-md")
	if sub.Watermark == nil || !sub.Watermark.Equal(run2.StartedAt) {
		t.Error("watermark should track the latest run")
	}
}
