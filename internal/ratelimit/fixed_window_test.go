package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(window time.Duration, max int) (*Limiter, *time.Time) {
	l := New(window, max)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_ExactBudgetPerWindow(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 3)

	// Exactly max requests pass.
	for i := 0; i < 3; i++ {
		assert.True(t, l.Check("screen-a").Allowed, "request %d", i+1)
	}

	// Request max+1 in the same window is rejected with a retry hint.
	out := l.Check("screen-a")
	require.False(t, out.Allowed)
	assert.Equal(t, 60, out.RetryAfter)
}

func TestLimiter_WindowResets(t *testing.T) {
	l, now := newTestLimiter(time.Minute, 2)

	assert.True(t, l.Check("screen-a").Allowed)
	assert.True(t, l.Check("screen-a").Allowed)
	assert.False(t, l.Check("screen-a").Allowed)

	// Once the window elapses the next request starts a fresh count.
	*now = now.Add(time.Minute)
	assert.True(t, l.Check("screen-a").Allowed)
	assert.True(t, l.Check("screen-a").Allowed)
	assert.False(t, l.Check("screen-a").Allowed)
}

func TestLimiter_RetryAfterShrinksWithinWindow(t *testing.T) {
	l, now := newTestLimiter(time.Minute, 1)

	assert.True(t, l.Check("screen-a").Allowed)
	*now = now.Add(45 * time.Second)
	out := l.Check("screen-a")
	require.False(t, out.Allowed)
	assert.Equal(t, 15, out.RetryAfter)
}

func TestLimiter_IdentifiersAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 1)

	assert.True(t, l.Check("screen-a").Allowed)
	assert.False(t, l.Check("screen-a").Allowed)
	assert.True(t, l.Check("screen-b").Allowed)
}

func TestLimiter_Concurrent(t *testing.T) {
	l := New(time.Minute, 100)
	var allowed, rejected int64

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if l.Check("screen-a").Allowed {
				atomic.AddInt64(&allowed, 1)
			} else {
				atomic.AddInt64(&rejected, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(100), allowed)
	assert.Equal(t, int64(100), rejected)
}
