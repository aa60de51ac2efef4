// Package ratelimit throttles requests per key, in process or shared through Redis.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// MemoryLimiter keeps one token bucket per key inside this process.
// A bucket idle long enough to have refilled completely is dropped, so the map tracks only active keys.
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	every     time.Duration
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewMemoryLimiter(capacity int, refillEvery time.Duration) *MemoryLimiter {
	idle := refillEvery * time.Duration(capacity)
	if idle < time.Minute {
		idle = time.Minute
	}
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		every:   refillEvery,
		burst:   capacity,
		idleTTL: idle,
		now:     time.Now,
	}
}

func (m *MemoryLimiter) get(key string, now time.Time) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) >= m.idleTTL {
		m.sweep(now)
	}

	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(m.every), m.burst)}
		m.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// sweep must be called with mu held.
func (m *MemoryLimiter) sweep(now time.Time) {
	for key, b := range m.buckets {
		if now.Sub(b.lastSeen) >= m.idleTTL {
			delete(m.buckets, key)
		}
	}
	m.lastSweep = now
}

// Len reports how many keys currently hold a bucket.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := m.now()
	l := m.get(key, now)

	r := l.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return Decision{Allowed: false, RetryAfter: delay}, nil
	}

	remaining := int(l.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: true, Remaining: remaining}, nil
}
