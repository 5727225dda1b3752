package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/parikshasetu/assessment-core/internal/config"
	"github.com/parikshasetu/assessment-core/internal/notify"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// PollTimeout must be >= 1s to satisfy Redis BLPop granularity.
const PollTimeout = 1 * time.Second

// NotificationSender delivers one message to its user. Satisfied by
// client.NotificationClient; tests substitute a fake.
type NotificationSender interface {
	Send(ctx context.Context, userID int64, message string) error
}

// NotificationWorker drains the notification outbox queue and pushes each
// envelope to the notification collaborator. Delivery is fire-and-forget:
// a failed send is logged and dropped, never retried, so a dead
// notification service can never back up the queue forever.
type NotificationWorker struct {
	rdb    *redis.Client
	sender NotificationSender
	log    zerolog.Logger
}

// NewNotificationWorker creates a new NotificationWorker.
func NewNotificationWorker(rdb *redis.Client, sender NotificationSender, log zerolog.Logger) *NotificationWorker {
	return &NotificationWorker{
		rdb:    rdb,
		sender: sender,
		log:    log.With().Str("component", "notification_worker").Logger(),
	}
}

// Start runs the drain loop until ctx is cancelled.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Notification worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Notification worker stopping")
			return
		default:
		}

		result, err := w.rdb.BLPop(ctx, PollTimeout, config.WorkerKey.NotifyOutboxQueue).Result()
		if err != nil {
			if err == redis.Nil {
				continue // Queue empty
			}
			if ctx.Err() != nil {
				return
			}
			w.log.Error().Err(err).Msg("Redis connection error, sleeping 3s")
			time.Sleep(3 * time.Second)
			continue
		}

		if len(result) < 2 {
			continue
		}

		var env notify.Envelope
		if err := json.Unmarshal([]byte(result[1]), &env); err != nil {
			w.log.Error().Err(err).Str("data", result[1]).Msg("Discarding malformed envelope")
			continue
		}

		w.deliver(ctx, env)
	}
}

func (w *NotificationWorker) deliver(ctx context.Context, env notify.Envelope) {
	if err := w.sender.Send(ctx, env.UserID, env.Message); err != nil {
		// Best effort by contract: log and drop.
		w.log.Warn().
			Err(err).
			Int64("user_id", env.UserID).
			Msg("Notification delivery failed, dropping")
		return
	}
	w.log.Debug().Int64("user_id", env.UserID).Msg("Notification delivered")
}
