package notify

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher fans events out over Redis PubSub channels. Used for the
// live proctor feed; subscribers that are not listening simply miss the
// event, which is acceptable for a feed backed by the persistent ledger.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher creates a new RedisPublisher.
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// Publish sends one payload to a channel.
func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.rdb.Publish(ctx, channel, payload).Err()
}
