package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobmate/radar-service/internal/model"
)

// PGStore implements SubscriptionStore, Ledger and DeliveryStore over
// PostgreSQL. One type, mirroring how the tables share a schema.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// ─── SubscriptionStore ───────────────────────────────────────────────────────

const selectSubscription = `
	SELECT id, owner_id, owner_email, query, company, region, source,
	       remote_only, pay_only, enabled, watermark
	FROM saved_searches`

func (s *PGStore) ListEnabled(ctx context.Context) ([]model.Subscription, error) {
	rows, err := s.pool.Query(ctx, selectSubscription+` WHERE enabled ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]model.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, id string) (*model.Subscription, error) {
	sub, err := scanSubscription(s.pool.QueryRow(ctx, selectSubscription+` WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get subscription %s: %w", id, err)
	}
	return &sub, nil
}

func (s *PGStore) AdvanceWatermark(ctx context.Context, id string, ts time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE saved_searches SET watermark = $1 WHERE id = $2`, ts, id)
	if err != nil {
		return fmt.Errorf("advance watermark %s: %w", id, err)
	}
	return nil
}

func scanSubscription(row pgx.Row) (model.Subscription, error) {
	var sub model.Subscription
	err := row.Scan(
		&sub.ID, &sub.OwnerID, &sub.OwnerEmail,
		&sub.Filter.Query, &sub.Filter.Company, &sub.Filter.Region,
		&sub.Filter.Source, &sub.Filter.RemoteOnly, &sub.Filter.PayOnly,
		&sub.Enabled, &sub.Watermark,
	)
	return sub, err
}

// ─── Ledger ──────────────────────────────────────────────────────────────────

func (s *PGStore) Unseen(ctx context.Context, subscriptionID string, fingerprints []string) ([]string, error) {
	if len(fingerprints) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT fingerprint FROM alert_ledger
		 WHERE subscription_id = $1 AND fingerprint = ANY($2)`,
		subscriptionID, fingerprints,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger unseen: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("ledger scan: %w", err)
		}
		seen[fp] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	unseen := make([]string, 0, len(fingerprints))
	for _, fp := range fingerprints {
		if !seen[fp] {
			unseen = append(unseen, fp)
		}
	}
	return unseen, nil
}

// Record relies on the (subscription_id, fingerprint) primary key: the
// ON CONFLICT DO NOTHING insert is the atomicity guarantee under
// overlapping runs.
func (s *PGStore) Record(ctx context.Context, subscriptionID string, fingerprints []string) error {
	for _, fp := range fingerprints {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO alert_ledger (subscription_id, fingerprint)
			 VALUES ($1, $2)
			 ON CONFLICT (subscription_id, fingerprint) DO NOTHING`,
			subscriptionID, fp,
		)
		if err != nil {
			return fmt.Errorf("ledger record %s: %w", subscriptionID, err)
		}
	}
	return nil
}

// ─── DeliveryStore ───────────────────────────────────────────────────────────

func (s *PGStore) Create(ctx context.Context, d model.Delivery) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO deliveries
		   (id, subscription_id, run_id, fingerprints, matched_count, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.SubscriptionID, d.RunID, d.Fingerprints, d.MatchedCount, d.Status, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	return nil
}

func (s *PGStore) ListByStatus(ctx context.Context, status string) ([]model.Delivery, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, subscription_id, run_id, fingerprints, matched_count, status, created_at
		 FROM deliveries WHERE status = $1 ORDER BY created_at`,
		status,
	)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	deliveries := make([]model.Delivery, 0)
	for rows.Next() {
		var d model.Delivery
		if err := rows.Scan(&d.ID, &d.SubscriptionID, &d.RunID,
			&d.Fingerprints, &d.MatchedCount, &d.Status, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

func (s *PGStore) SetStatus(ctx context.Context, id, status string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE deliveries SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("set delivery %s status: %w", id, err)
	}
	return nil
}
