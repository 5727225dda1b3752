// Package notify carries best-effort event delivery: the notification
// outbox queue drained by the notification worker, and the violation
// pub/sub feed consumed by the live proctor stream.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/parikshasetu/assessment-core/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Envelope is one queued notification.
type Envelope struct {
	UserID   int64  `json:"user_id"`
	Message  string `json:"message"`
	QueuedAt int64  `json:"queued_at"`
}

// OutboxDispatcher queues notifications onto a Redis list instead of
// calling the notification collaborator inline. The triggering operation
// (for example enrollment approval) only pays for an RPush; delivery and
// delivery failures belong to the worker.
type OutboxDispatcher struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewOutboxDispatcher creates a new OutboxDispatcher.
func NewOutboxDispatcher(rdb *redis.Client, log zerolog.Logger) *OutboxDispatcher {
	return &OutboxDispatcher{
		rdb: rdb,
		log: log.With().Str("component", "notify_outbox").Logger(),
	}
}

// Dispatch queues one (user, message) pair for delivery.
func (d *OutboxDispatcher) Dispatch(ctx context.Context, userID int64, message string) error {
	data, err := json.Marshal(Envelope{
		UserID:   userID,
		Message:  message,
		QueuedAt: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if err := d.rdb.RPush(ctx, config.WorkerKey.NotifyOutboxQueue, data).Err(); err != nil {
		return fmt.Errorf("queue notification: %w", err)
	}
	return nil
}
