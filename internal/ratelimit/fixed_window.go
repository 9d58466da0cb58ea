// Package ratelimit implements the fixed-window counter that guards the
// display resolution path per public identifier. Its job is to stop a broken
// client (a TV app stuck retrying every 100ms) from chewing through the
// connection pool, not to be a fair scheduler.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Outcome is the result of one limiter check. RetryAfter is only meaningful
// when Allowed is false and is the number of whole seconds until the
// identifier's window resets.
type Outcome struct {
	Allowed    bool
	RetryAfter int
}

type bucket struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per public identifier in fixed windows. Exactly
// MaxRequests requests pass per window; the next one is rejected until the
// window elapses. Idle buckets are never swept: cardinality is bounded by the
// number of distinct identifiers, and a stale bucket is overwritten by the
// next request for it.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	window  time.Duration
	max     int

	now func() time.Time // injectable for tests
}

// New constructs a Limiter allowing max requests per window per identifier.
func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Check records one request for identifier and reports whether it may
// proceed. The first request of a window always passes and starts the window.
func (l *Limiter) Check(identifier string) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[identifier]
	if !ok || !now.Before(b.resetAt) {
		l.buckets[identifier] = &bucket{count: 1, resetAt: now.Add(l.window)}
		return Outcome{Allowed: true}
	}

	b.count++
	if b.count > l.max {
		secs := int(math.Ceil(b.resetAt.Sub(now).Seconds()))
		if secs < 0 {
			secs = 0
		}
		return Outcome{Allowed: false, RetryAfter: secs}
	}
	return Outcome{Allowed: true}
}
