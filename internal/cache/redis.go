package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Redis is a Cache backed by a Redis instance. Expiry is delegated to
// Redis key TTLs, so eviction needs no work on our side. Redis errors are
// treated as cache misses: the estimator recomputes, which is cheap and
// idempotent.
type Redis[T any] struct {
	client    *redis.Client
	keyPrefix string
	logger    *zerolog.Logger
}

// NewRedis connects to Redis at addr and verifies the connection.
func NewRedis[T any](ctx context.Context, addr, password string, db int, keyPrefix string, logger *zerolog.Logger) (*Redis[T], error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Redis[T]{client: client, keyPrefix: keyPrefix, logger: logger}, nil
}

func (r *Redis[T]) key(k string) string {
	return r.keyPrefix + ":" + k
}

// Get returns the cached value for key, or a miss if the key is absent,
// expired, or Redis is unreachable.
func (r *Redis[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn().Err(err).Str("key", key).Msg("Redis get failed, treating as miss")
		}
		return zero, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("Failed to decode cached value, treating as miss")
		return zero, false
	}
	return value, true
}

// Set stores value under key with the given TTL. Failures are logged and
// dropped; a missed write only costs a recomputation later.
func (r *Redis[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("Failed to encode value for cache")
		return
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("Redis set failed")
	}
}

// Clear removes all keys under this cache's prefix.
func (r *Redis[T]) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, r.keyPrefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			r.logger.Warn().Err(err).Str("key", iter.Val()).Msg("Redis delete failed")
		}
	}
	if err := iter.Err(); err != nil {
		r.logger.Warn().Err(err).Msg("Redis scan failed during clear")
	}
}

// Close releases the underlying Redis connection.
func (r *Redis[T]) Close() error {
	return r.client.Close()
}
