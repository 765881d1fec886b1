package source

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"jobmate/radar-service/internal/events"
	"jobmate/radar-service/internal/model"
	"jobmate/radar-service/internal/runlog"
)

// Syncer runs one full sync cycle across every configured source. Sources
// run with bounded parallelism; each source's sweep is sequenced after its
// own batch inside Adapter.SyncSource, so cross-source concurrency is safe.
type Syncer struct {
	adapter     *Adapter
	runs        runlog.Store
	pub         *events.Publisher
	sources     []string
	parallelism int
}

// NewSyncer constructs a Syncer. parallelism < 1 means sequential.
func NewSyncer(adapter *Adapter, runs runlog.Store, pub *events.Publisher, sources []string, parallelism int) *Syncer {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Syncer{
		adapter:     adapter,
		runs:        runs,
		pub:         pub,
		sources:     sources,
		parallelism: parallelism,
	}
}

// Run executes one sync cycle and returns the finalized Run record. A
// per-source failure is logged with its classification and counted; it never
// aborts the other sources.
func (s *Syncer) Run(ctx context.Context) (*model.Run, error) {
	started := time.Now().UTC()
	run, err := s.runs.Create(ctx, model.RunKindSync, started)
	if err != nil {
		return nil, err
	}
	log.Printf("[sync] run %s started — %d source(s)", run.ID, len(s.sources))

	var (
		mu       sync.Mutex
		upserted int
		errCount int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for _, src := range s.sources {
		src := src
		g.Go(func() error {
			stats, err := s.adapter.SyncSource(gctx, src, started)
			mu.Lock()
			defer mu.Unlock()
			upserted += stats.Upserted
			if err != nil {
				errCount++
				log.Printf("[sync] source %s failed (%s): %v", src, Classify(err), err)
			}
			return nil // isolation: never cancel sibling sources
		})
	}
	g.Wait()

	finished := time.Now().UTC()
	run.FinishedAt = &finished
	run.Processed = len(s.sources)
	run.Queued = upserted
	run.Errors = errCount
	run.Status = model.RunOK
	if errCount > 0 {
		run.Status = model.RunPartial
	}
	if err := s.runs.Finish(ctx, run); err != nil {
		return run, err
	}

	s.pub.Publish(ctx, events.ChannelSyncCompleted, map[string]string{
		"runId":    run.ID,
		"status":   run.Status,
		"upserted": strconv.Itoa(upserted),
		"errors":   strconv.Itoa(errCount),
	})
	log.Printf("[sync] run %s %s — sources=%d upserted=%d errors=%d",
		run.ID, run.Status, run.Processed, upserted, errCount)
	return run, nil
}
