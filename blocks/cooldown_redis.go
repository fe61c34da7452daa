package blocks

import (
	"context"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// RedisCooldownStore is a CooldownStore backed by Redis, for cooldowns
// shared across processes. It uses a fixed-window counter per scope/key:
// INCR with an expiry of the window length, rejecting once the count
// exceeds the rate.
type RedisCooldownStore struct {
	client *backend.Client
	prefix string
}

// RedisCooldownOption configures a RedisCooldownStore.
type RedisCooldownOption func(*RedisCooldownStore)

// WithKeyPrefix sets the Redis key prefix. Default: "tagscript:cooldown:"
func WithKeyPrefix(prefix string) RedisCooldownOption {
	return func(s *RedisCooldownStore) {
		s.prefix = prefix
	}
}

// NewRedisCooldownStore creates a store over an existing Redis client.
func NewRedisCooldownStore(client *backend.Client, opts ...RedisCooldownOption) *RedisCooldownStore {
	store := &RedisCooldownStore{
		client: client,
		prefix: "tagscript:cooldown:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// key builds the bucket key for a scope/key pair.
func (s *RedisCooldownStore) key(scope, key string) string {
	return s.prefix + scope + ":" + key
}

// Hit implements CooldownStore.
func (s *RedisCooldownStore) Hit(ctx context.Context, scope, key string, rate int, per time.Duration) (time.Duration, error) {
	bucket := s.key(scope, key)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, bucket)
	// NX keeps the window anchored at the first hit.
	pipe.ExpireNX(ctx, bucket, per)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	if incr.Val() <= int64(rate) {
		return 0, nil
	}

	ttl, err := s.client.PTTL(ctx, bucket).Result()
	if err != nil {
		return 0, err
	}
	if ttl <= 0 {
		ttl = per
	}
	return ttl, nil
}
