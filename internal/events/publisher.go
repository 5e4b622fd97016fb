// Package events publishes content lifecycle events to Redis Streams.
// Publishing is optional: a nil Publisher is a safe no-op.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
)

// StreamName is the Redis stream carrying content events.
const StreamName = "portfolio:content-events"

const asyncPublishTimeout = 5 * time.Second

// EventType names a content lifecycle transition.
type EventType string

const (
	ContentCreated EventType = "content.created"
	ContentUpdated EventType = "content.updated"
	ContentDeleted EventType = "content.deleted"
)

// ContentEvent describes one mutation of a collection record.
type ContentEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  EventType `json:"event_type"`
	Collection string    `json:"collection"`
	RecordID   int64     `json:"record_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher publishes content events to Redis Streams.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a publisher. Returns nil if client is nil.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{client: client, log: log}
}

// Publish sends an event to the stream. A nil receiver is a no-op.
func (p *Publisher) Publish(ctx context.Context, event ContentEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{"event": string(payload)},
	})

	if publishErr := result.Err(); publishErr != nil {
		p.log.Error("Failed to publish content event",
			logger.String("event_type", string(event.EventType)),
			logger.String("collection", event.Collection),
			logger.Error(publishErr),
		)
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	p.log.Info("Published content event",
		logger.String("event_type", string(event.EventType)),
		logger.String("collection", event.Collection),
		logger.Int64("record_id", event.RecordID),
		logger.String("stream_id", result.Val()),
	)
	return nil
}

// PublishAsync publishes without blocking the mutation path. Errors are
// logged, never returned; a lost event does not fail the user's save.
func (p *Publisher) PublishAsync(event ContentEvent) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil {
			p.log.Error("Async publish failed",
				logger.String("event_type", string(event.EventType)),
				logger.String("collection", event.Collection),
				logger.Error(err),
			)
		}
	}()
}
