package alert

import (
	"context"
	"sort"
	"sync"
	"time"

	"jobmate/radar-service/internal/model"
)

// MemStore implements SubscriptionStore, Ledger and DeliveryStore in memory,
// with the same semantics as PGStore. Used by tests and dry-run verification.
type MemStore struct {
	mu            sync.Mutex
	subscriptions map[string]model.Subscription
	ledger        map[string]map[string]bool // subscriptionID -> fingerprint set
	deliveries    map[string]model.Delivery
}

func NewMemStore() *MemStore {
	return &MemStore{
		subscriptions: make(map[string]model.Subscription),
		ledger:        make(map[string]map[string]bool),
		deliveries:    make(map[string]model.Delivery),
	}
}

// PutSubscription seeds or replaces a subscription; stands in for the
// owner-facing UI writes that are out of the pipeline's scope.
func (s *MemStore) PutSubscription(sub model.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions[sub.ID] = sub
}

func (s *MemStore) ListEnabled(ctx context.Context) ([]model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := make([]model.Subscription, 0)
	for _, sub := range s.subscriptions {
		if sub.Enabled {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(a, b int) bool { return subs[a].ID < subs[b].ID })
	return subs, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (*model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscriptions[id]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	return &sub, nil
}

func (s *MemStore) AdvanceWatermark(ctx context.Context, id string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subscriptions[id]
	if !ok {
		return ErrSubscriptionNotFound
	}
	sub.Watermark = &ts
	s.subscriptions[id] = sub
	return nil
}

func (s *MemStore) Unseen(ctx context.Context, subscriptionID string, fingerprints []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := s.ledger[subscriptionID]
	unseen := make([]string, 0, len(fingerprints))
	for _, fp := range fingerprints {
		if !seen[fp] {
			unseen = append(unseen, fp)
		}
	}
	return unseen, nil
}

func (s *MemStore) Record(ctx context.Context, subscriptionID string, fingerprints []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := s.ledger[subscriptionID]
	if seen == nil {
		seen = make(map[string]bool)
		s.ledger[subscriptionID] = seen
	}
	for _, fp := range fingerprints {
		seen[fp] = true
	}
	return nil
}

func (s *MemStore) Create(ctx context.Context, d model.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries[d.ID] = d
	return nil
}

func (s *MemStore) ListByStatus(ctx context.Context, status string) ([]model.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Delivery, 0)
	for _, d := range s.deliveries {
		if d.Status == status {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.Before(out[b].CreatedAt) })
	return out, nil
}

func (s *MemStore) SetStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.deliveries[id]
	if !ok {
		return ErrDeliveryNotFound
	}
	d.Status = status
	s.deliveries[id] = d
	return nil
}

// Deliveries returns every stored delivery; test helper.
func (s *MemStore) Deliveries() []model.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Delivery, 0, len(s.deliveries))
	for _, d := range s.deliveries {
		out = append(out, d)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.Before(out[b].CreatedAt) })
	return out
}
