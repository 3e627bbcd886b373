// Package redis provides the Redis-backed event publisher. Events fan out
// over pub/sub channels that the notification edge subscribes to.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"

	"dispatch/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "dispatch:events"

// EventPublisher publishes dispatch events to Redis pub/sub channels.
// Role-audience events go to dispatch:events:role:<role>; user-audience
// events go to dispatch:events:user:<id>. Publishing is best-effort:
// failures are logged and swallowed so the business operation that produced
// the event never fails on notification problems.
type EventPublisher struct {
	client *redis.Client
	logger *slog.Logger
}

// NewEventPublisher creates a publisher on the given Redis client.
func NewEventPublisher(client *redis.Client, logger *slog.Logger) *EventPublisher {
	return &EventPublisher{
		client: client,
		logger: logger,
	}
}

// Publish sends the event to its audience channel.
func (p *EventPublisher) Publish(ctx context.Context, event ports.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal event", "kind", event.Kind, "error", err)
		return
	}

	channel := channelPrefix + ":" + event.Audience + ":" + event.Target
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		p.logger.Error("publish event", "kind", event.Kind, "channel", channel, "error", err)
	}
}
