// Package ratelimit provides the fixed-window throttles guarding the public
// certificate endpoints.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
)

// ErrLimiterFull is returned when every tracked window is still live and a
// new key arrives. The middleware decides whether that fails open or closed.
var ErrLimiterFull = errors.New("rate limiter key capacity exhausted")

const defaultMaxTrackedKeys = 10000

// countingWindow tracks one key's hits until resetAt passes.
type countingWindow struct {
	hits    int
	resetAt time.Time
}

// memoryLimiter is the single-process limiter used when no Redis address is
// configured. Expired windows are swept lazily, only when the key table is
// full, so steady-state requests pay one map lookup.
type memoryLimiter struct {
	mu      sync.Mutex
	clock   func() time.Time
	windows map[string]*countingWindow
	maxKeys int
}

type MemoryLimiterConfig struct {
	Now     func() time.Time
	MaxKeys int
}

func NewMemoryLimiter(cfg MemoryLimiterConfig) domain.RateLimiter {
	clock := cfg.Now
	if clock == nil {
		clock = time.Now
	}
	maxKeys := cfg.MaxKeys
	if maxKeys <= 0 {
		maxKeys = defaultMaxTrackedKeys
	}
	return &memoryLimiter{
		clock:   clock,
		windows: make(map[string]*countingWindow),
		maxKeys: maxKeys,
	}
}

func (m *memoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (domain.RateLimitDecision, error) {
	if limit <= 0 {
		return domain.RateLimitDecision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}
	now := m.clock()

	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.windows[key]
	if w != nil && now.After(w.resetAt) {
		delete(m.windows, key)
		w = nil
	}
	if w == nil {
		if len(m.windows) >= m.maxKeys {
			m.sweep(now)
			if len(m.windows) >= m.maxKeys {
				return domain.RateLimitDecision{}, ErrLimiterFull
			}
		}
		w = &countingWindow{resetAt: now.Add(window)}
		m.windows[key] = w
	}

	decision := domain.RateLimitDecision{
		Limit:   limit,
		ResetAt: w.resetAt,
	}
	if w.hits >= limit {
		return decision, nil
	}
	w.hits++
	decision.Allowed = true
	decision.Remaining = limit - w.hits
	return decision, nil
}

// sweep drops every expired window. Callers hold the mutex.
func (m *memoryLimiter) sweep(now time.Time) {
	for key, w := range m.windows {
		if now.After(w.resetAt) {
			delete(m.windows, key)
		}
	}
}
