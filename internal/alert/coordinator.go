package alert

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"jobmate/radar-service/internal/catalog"
	"jobmate/radar-service/internal/events"
	"jobmate/radar-service/internal/model"
	"jobmate/radar-service/internal/runlog"
)

// Coordinator orchestrates one alert cycle: evaluate every enabled
// subscription against recent catalog changes, queue deliveries for unseen
// matches and advance watermarks. Subscriptions are processed independently;
// one failure never blocks another.
type Coordinator struct {
	catalog    catalog.Store
	subs       SubscriptionStore
	ledger     Ledger
	deliveries DeliveryStore
	runs       runlog.Store
	pub        *events.Publisher
	lookback   time.Duration // window for subscriptions with no watermark yet
}

// NewCoordinator constructs a Coordinator.
func NewCoordinator(cat catalog.Store, subs SubscriptionStore, ledger Ledger,
	deliveries DeliveryStore, runs runlog.Store, pub *events.Publisher,
	lookback time.Duration) *Coordinator {
	return &Coordinator{
		catalog:    cat,
		subs:       subs,
		ledger:     ledger,
		deliveries: deliveries,
		runs:       runs,
		pub:        pub,
		lookback:   lookback,
	}
}

// Run executes one alert cycle and returns the finalized Run record. Only a
// subscription-list read failure is run-fatal; per-subscription errors are
// logged, counted and isolated.
func (c *Coordinator) Run(ctx context.Context) (*model.Run, error) {
	started := time.Now().UTC()
	run, err := c.runs.Create(ctx, model.RunKindAlert, started)
	if err != nil {
		return nil, err
	}
	log.Printf("[alert] run %s started", run.ID)

	subs, err := c.subs.ListEnabled(ctx)
	if err != nil {
		if ferr := c.finish(ctx, run, model.RunFailed); ferr != nil {
			log.Printf("[alert] run %s: finalizing failed run also failed: %v", run.ID, ferr)
		}
		return run, err
	}

	for _, sub := range subs {
		run.Processed++
		queued, err := c.evaluate(ctx, sub, run.ID, started)
		// A delivery queued before a late failure (watermark write) is real
		// and must be counted either way.
		run.Queued += queued
		if err != nil {
			// No watermark advance on an unrecoverable error, so the window
			// is re-examined next cycle. The ledger keeps that re-examination
			// duplicate-free.
			run.Errors++
			log.Printf("[alert] subscription %s failed: %v", sub.ID, err)
		}
	}

	status := model.RunOK
	if run.Errors > 0 {
		status = model.RunPartial
	}
	if err := c.finish(ctx, run, status); err != nil {
		return run, err
	}

	c.pub.Publish(ctx, events.ChannelAlertRunFinished, map[string]string{
		"runId":     run.ID,
		"status":    run.Status,
		"processed": strconv.Itoa(run.Processed),
		"queued":    strconv.Itoa(run.Queued),
		"errors":    strconv.Itoa(run.Errors),
	})
	log.Printf("[alert] run %s %s — subscriptions=%d queued=%d errors=%d",
		run.ID, run.Status, run.Processed, run.Queued, run.Errors)
	return run, nil
}

// evaluate processes one subscription and returns how many deliveries were
// queued (0 or 1). The watermark advances on every successful evaluation,
// matches or not, so the window always moves forward.
func (c *Coordinator) evaluate(ctx context.Context, sub model.Subscription, runID string, runTime time.Time) (int, error) {
	since := runTime.Add(-c.lookback)
	if sub.Watermark != nil {
		since = *sub.Watermark
	}

	jobs, err := c.catalog.List(ctx, catalog.Query{ActiveOnly: true, SeenSince: &since})
	if err != nil {
		return 0, err
	}

	matched := make([]string, 0)
	for _, job := range jobs {
		if Matches(job, sub.Filter) {
			matched = append(matched, job.Fingerprint)
		}
	}

	queued := 0
	if len(matched) > 0 {
		unseen, err := c.ledger.Unseen(ctx, sub.ID, matched)
		if err != nil {
			return 0, err
		}
		if len(unseen) > 0 {
			delivery := model.Delivery{
				ID:             uuid.NewString(),
				SubscriptionID: sub.ID,
				RunID:          runID,
				Fingerprints:   unseen,
				MatchedCount:   len(unseen),
				Status:         model.DeliveryQueued,
				CreatedAt:      runTime,
			}
			if err := c.deliveries.Create(ctx, delivery); err != nil {
				return 0, err
			}
			// Dedup barrier: once recorded, these pairs can never be
			// delivered again, whatever happens to this delivery.
			if err := c.ledger.Record(ctx, sub.ID, unseen); err != nil {
				return 0, err
			}
			queued = 1
		}
	}

	if err := c.subs.AdvanceWatermark(ctx, sub.ID, runTime); err != nil {
		return queued, err
	}
	return queued, nil
}

func (c *Coordinator) finish(ctx context.Context, run *model.Run, status string) error {
	finished := time.Now().UTC()
	run.FinishedAt = &finished
	run.Status = status
	return c.runs.Finish(ctx, run)
}
