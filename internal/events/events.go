// Package events publishes pipeline lifecycle events on Redis pub/sub so
// downstream services (UI refresh, digest composer) can react without
// polling. Publishing is always non-fatal to the pipeline.
package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Channels.
const (
	ChannelSyncCompleted    = "EVENT_SYNC_COMPLETED"
	ChannelAlertRunFinished = "EVENT_ALERT_RUN_FINISHED"
	ChannelDeliverySent     = "EVENT_DELIVERY_SENT"
)

// Publisher wraps a Redis client. A nil client disables publishing, which is
// what tests and dry-run verification use.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// Publish marshals the payload and fires it on the channel. Errors are
// logged and swallowed.
func (p *Publisher) Publish(ctx context.Context, channel string, payload map[string]string) {
	if p == nil || p.rdb == nil {
		return
	}
	body, _ := json.Marshal(payload)
	if err := p.rdb.Publish(ctx, channel, body).Err(); err != nil {
		slog.Warn("event publish failed", "channel", channel, "err", err)
	}
}
