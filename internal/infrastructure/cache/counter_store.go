// Package cache provides fixed-window request counters backing the HTTP
// rate limiter, with Redis for distributed deployments and an in-memory
// fallback for single-instance or test setups.
package cache

import (
	"context"
	"sync"
	"time"
)

// CounterStore counts requests per key within fixed time windows.
type CounterStore interface {
	// Incr increments the counter for key in the current window and returns
	// the new count plus the time the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}

// InMemoryCounterStore is a CounterStore backed by a process-local map.
type InMemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
}

type windowCounter struct {
	count   int64
	resetAt time.Time
}

// NewInMemoryCounterStore creates an in-memory counter store
func NewInMemoryCounterStore() *InMemoryCounterStore {
	return &InMemoryCounterStore{
		counters: make(map[string]*windowCounter),
	}
}

// Incr implements CounterStore
func (s *InMemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok || now.After(c.resetAt) {
		c = &windowCounter{resetAt: now.Add(window)}
		s.counters[key] = c
	}
	c.count++

	// Opportunistic cleanup of expired windows to bound memory.
	if len(s.counters) > 10000 {
		for k, v := range s.counters {
			if now.After(v.resetAt) {
				delete(s.counters, k)
			}
		}
	}

	return c.count, c.resetAt, nil
}
