package alert

import (
	"context"
	"fmt"
	"time"

	"jobmate/radar-service/internal/model"
)

// ErrSubscriptionNotFound is returned for an unknown subscription id.
var ErrSubscriptionNotFound = fmt.Errorf("subscription not found")

// ErrDeliveryNotFound is returned for an unknown delivery id.
var ErrDeliveryNotFound = fmt.Errorf("delivery not found")

// DeliveryError wraps a notification send failure. The delivery is marked
// failed with its matched-job linkage intact, so a retry never re-derives
// matches.
type DeliveryError struct{ Err error }

func (e *DeliveryError) Error() string { return fmt.Sprintf("delivery failed: %v", e.Err) }
func (e *DeliveryError) Unwrap() error { return e.Err }

// SubscriptionStore is the saved-search port. The pipeline only reads
// enabled subscriptions and advances watermarks; all other mutation belongs
// to the owner-facing UI layer.
type SubscriptionStore interface {
	ListEnabled(ctx context.Context) ([]model.Subscription, error)
	Get(ctx context.Context, id string) (*model.Subscription, error)
	AdvanceWatermark(ctx context.Context, id string, ts time.Time) error
}

// Ledger is the set of already-notified (subscription, job) pairs. It is the
// at-most-once boundary: Record must be atomic with respect to concurrent
// runs, so a pair can never be delivered twice even under overlapping cycles.
type Ledger interface {
	// Unseen returns the subset of fingerprints with no ledger entry for the
	// subscription, preserving input order.
	Unseen(ctx context.Context, subscriptionID string, fingerprints []string) ([]string, error)

	// Record inserts the pairs, ignoring ones already present.
	Record(ctx context.Context, subscriptionID string, fingerprints []string) error
}

// DeliveryStore persists Delivery records across their status lifecycle.
type DeliveryStore interface {
	Create(ctx context.Context, d model.Delivery) error
	ListByStatus(ctx context.Context, status string) ([]model.Delivery, error)
	SetStatus(ctx context.Context, id, status string) error
}
