// Package scheduler wires up the cron jobs that periodically trigger the
// sync cycle and the alert cycle. The scheduler is also responsible for not
// overlapping runs of the same job type, though both cycles stay correct
// even if runs overlap.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"jobmate/radar-service/internal/alert"
	"jobmate/radar-service/internal/source"
)

// Scheduler wraps robfig/cron and manages both pipeline loops.
type Scheduler struct {
	cron        *cron.Cron
	syncer      *source.Syncer
	coordinator *alert.Coordinator
	dispatcher  *alert.Dispatcher
	syncSpec    string // e.g. "@every 6h"
	alertSpec   string // e.g. "@every 1h"
}

// New creates a Scheduler firing sync every syncHours and alerts every
// alertHours.
func New(syncer *source.Syncer, coordinator *alert.Coordinator, dispatcher *alert.Dispatcher,
	syncHours, alertHours int) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLogger(cron.DefaultLogger)),
		syncer:      syncer,
		coordinator: coordinator,
		dispatcher:  dispatcher,
		syncSpec:    fmt.Sprintf("@every %dh", syncHours),
		alertSpec:   fmt.Sprintf("@every %dh", alertHours),
	}
}

// Start registers both jobs and starts the scheduler. Also runs one sync
// immediately so the catalog is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.syncSpec, func() { s.runSync(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc sync: %w", err)
	}
	if _, err := s.cron.AddFunc(s.alertSpec, func() { s.runAlert(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc alert: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — sync: %s, alert: %s", s.syncSpec, s.alertSpec)

	// Run immediately on startup (non-blocking)
	go s.runSync(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) runSync(ctx context.Context) {
	if _, err := s.syncer.Run(ctx); err != nil {
		log.Printf("[scheduler] sync run error: %v", err)
	}
}

// runAlert runs one alert cycle, drains the queue, then retries earlier
// failures while their matched linkage is still fresh.
func (s *Scheduler) runAlert(ctx context.Context) {
	if _, err := s.coordinator.Run(ctx); err != nil {
		log.Printf("[scheduler] alert run error: %v", err)
		return
	}
	if _, _, err := s.dispatcher.Dispatch(ctx); err != nil {
		log.Printf("[scheduler] dispatch error: %v", err)
	}
	if _, _, err := s.dispatcher.RetryFailed(ctx); err != nil {
		log.Printf("[scheduler] retry dispatch error: %v", err)
	}
}
