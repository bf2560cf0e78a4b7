package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisCounterStore implements CounterStore using Redis.
// Suitable for distributed deployments where multiple instances
// must share rate-limit state.
type RedisCounterStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCounterStore creates a Redis-backed counter store
func NewRedisCounterStore(cfg config.RedisConfig) (*RedisCounterStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCounterStore{
		client:    client,
		keyPrefix: "ratelimit:",
	}, nil
}

// NewRedisCounterStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisCounterStoreWithClient(client *redis.Client, keyPrefix string) *RedisCounterStore {
	if keyPrefix == "" {
		keyPrefix = "ratelimit:"
	}
	return &RedisCounterStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Incr implements CounterStore. The key is bucketed by window so all
// instances agree on window boundaries, and the first increment in a
// window sets the TTL atomically via a pipeline.
func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()
	bucket := now.UnixNano() / int64(window)
	redisKey := fmt.Sprintf("%s%s:%d", s.keyPrefix, key, bucket)
	resetAt := time.Unix(0, (bucket+1)*int64(window))

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	return incr.Val(), resetAt, nil
}

// Close closes the Redis client
func (s *RedisCounterStore) Close() error {
	return s.client.Close()
}

// Ensure both stores implement CounterStore
var (
	_ CounterStore = (*RedisCounterStore)(nil)
	_ CounterStore = (*InMemoryCounterStore)(nil)
)
