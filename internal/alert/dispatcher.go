package alert

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jobmate/radar-service/internal/catalog"
	"jobmate/radar-service/internal/events"
	"jobmate/radar-service/internal/model"
)

// Sender is the injected notification capability. The real implementation
// (email API or otherwise) lives outside this service.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// LogSender writes notifications to the process log. Stand-in Sender until
// the email relay service is wired in.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, recipient, subject, body string) error {
	log.Printf("[sender] to=%s subject=%q\n%s", recipient, subject, body)
	return nil
}

// Dispatcher turns queued deliveries into outbound notifications. In dry-run
// mode it renders everything but performs no external call, marking
// deliveries dry_run instead.
type Dispatcher struct {
	deliveries DeliveryStore
	subs       SubscriptionStore
	catalog    catalog.Store
	sender     Sender
	pub        *events.Publisher
	dryRun     bool
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(deliveries DeliveryStore, subs SubscriptionStore, cat catalog.Store,
	sender Sender, pub *events.Publisher, dryRun bool) *Dispatcher {
	return &Dispatcher{
		deliveries: deliveries,
		subs:       subs,
		catalog:    cat,
		sender:     sender,
		pub:        pub,
		dryRun:     dryRun,
	}
}

// Dispatch processes every queued delivery. Per-delivery failures are
// isolated: a failed send marks that delivery failed and moves on.
func (d *Dispatcher) Dispatch(ctx context.Context) (sent, failed int, err error) {
	return d.drain(ctx, model.DeliveryQueued)
}

// RetryFailed re-dispatches failed deliveries. Possible because the matched
// fingerprint linkage survives a failure; no matches are re-derived and the
// ledger is untouched.
func (d *Dispatcher) RetryFailed(ctx context.Context) (sent, failed int, err error) {
	return d.drain(ctx, model.DeliveryFailed)
}

func (d *Dispatcher) drain(ctx context.Context, status string) (sent, failed int, err error) {
	pending, err := d.deliveries.ListByStatus(ctx, status)
	if err != nil {
		return 0, 0, err
	}

	for _, delivery := range pending {
		if err := d.dispatchOne(ctx, delivery); err != nil {
			failed++
			log.Printf("[dispatch] delivery %s failed: %v", delivery.ID, err)
			continue
		}
		sent++
	}
	return sent, failed, nil
}

func (d *Dispatcher) dispatchOne(ctx context.Context, delivery model.Delivery) error {
	sub, err := d.subs.Get(ctx, delivery.SubscriptionID)
	if err != nil {
		return err
	}

	// Resolve fingerprints to current catalog rows at send time; the
	// notification always reflects the freshest upserted fields.
	jobs, err := d.catalog.List(ctx, catalog.Query{Fingerprints: delivery.Fingerprints})
	if err != nil {
		return err
	}

	subject, body := render(jobs)

	if d.dryRun {
		log.Printf("[dispatch] dry-run delivery %s to %s: %s", delivery.ID, sub.OwnerEmail, subject)
		return d.deliveries.SetStatus(ctx, delivery.ID, model.DeliveryDryRun)
	}

	if err := d.sender.Send(ctx, sub.OwnerEmail, subject, body); err != nil {
		// Matched linkage stays on the record for RetryFailed.
		if setErr := d.deliveries.SetStatus(ctx, delivery.ID, model.DeliveryFailed); setErr != nil {
			return setErr
		}
		return &DeliveryError{Err: err}
	}

	if err := d.deliveries.SetStatus(ctx, delivery.ID, model.DeliverySent); err != nil {
		return err
	}
	d.pub.Publish(ctx, events.ChannelDeliverySent, map[string]string{
		"deliveryId":     delivery.ID,
		"subscriptionId": delivery.SubscriptionID,
		"matched":        fmt.Sprintf("%d", delivery.MatchedCount),
	})
	return nil
}

// render produces the notification payload from resolved catalog rows.
func render(jobs []model.Job) (subject, body string) {
	subject = fmt.Sprintf("%d new job match(es) for your saved search", len(jobs))

	var b strings.Builder
	for _, job := range jobs {
		loc := job.LocationRaw
		if loc == "" {
			loc = "location not listed"
		}
		fmt.Fprintf(&b, "- %s at %s (%s)\n  %s\n", job.Title, job.Company, loc, job.URL)
		if job.PayExtracted != nil {
			fmt.Fprintf(&b, "  pay: %s\n", *job.PayExtracted)
		}
	}
	return subject, b.String()
}
