// Package model defines shared data structures for the radar service.
package model

import "time"

// Job is one normalized, deduplicated catalog entry. Identity is Fingerprint,
// which stays stable across re-observations of the same logical posting.
type Job struct {
	Fingerprint  string
	Source       string
	SourceID     string
	Title        string
	CompanyRaw   string
	Company      string // normalized display name, never part of identity
	LocationRaw  string
	City         *string
	Region       *string // 2-letter code, nil when undetermined
	URL          string
	Description  string
	HasPay       bool
	PayExtracted *string
	PostedAt     time.Time
	IsActive     bool
	LastSeenAt   time.Time
}

// Subscription mirrors a saved_searches row. The pipeline only reads enabled
// subscriptions and writes Watermark; everything else belongs to the UI layer.
type Subscription struct {
	ID         string
	OwnerID    string
	OwnerEmail string
	Filter     Filter
	Enabled    bool
	Watermark  *time.Time // nil until the first completed alert run
}

// Filter is a saved-search specification. Every zero-valued field is a
// wildcard; set fields narrow with AND semantics.
type Filter struct {
	Query      string // case-insensitive substring over title+company+location
	Company    string // case-insensitive substring over normalized company
	Region     string // exact match against normalized region code
	Source     string // exact match against source identifier
	RemoteOnly bool
	PayOnly    bool
}

// Delivery status values mirror the delivery_status enum in PostgreSQL.
const (
	DeliveryQueued = "queued"
	DeliverySent   = "sent"
	DeliveryFailed = "failed"
	DeliveryDryRun = "dry_run"
)

// Delivery is one notification intent for a subscription. Fingerprints link
// to catalog rows and are kept through failures so a retry never has to
// re-derive matches.
type Delivery struct {
	ID             string
	SubscriptionID string
	RunID          string
	Fingerprints   []string
	MatchedCount   int
	Status         string
	CreatedAt      time.Time
}

// Run status values.
const (
	RunRunning = "running"
	RunOK      = "ok"
	RunPartial = "partial" // finished, but some sources or subscriptions errored
	RunFailed  = "failed"
)

// Run kinds.
const (
	RunKindSync  = "sync"
	RunKindAlert = "alert"
)

// Run is the audit record for one sync or alert cycle. Immutable once
// FinishedAt is set.
type Run struct {
	ID         string
	Kind       string
	StartedAt  time.Time
	FinishedAt *time.Time
	Status     string
	Processed  int // sources synced / subscriptions evaluated
	Queued     int // postings upserted / deliveries queued
	Errors     int
}
