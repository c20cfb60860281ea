package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(window time.Duration, max int) (*Limiter, *time.Time) {
	l := New(window, max)
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestLimiter_AllowsUpToMax(t *testing.T) {
	l, _ := newTestLimiter(15*time.Minute, 30)

	for i := 0; i < 30; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "attempt %d", i+1)
	}
	assert.False(t, l.Allow("10.0.0.1"), "attempt 31 must be limited")
}

func TestLimiter_WindowReset(t *testing.T) {
	l, clock := newTestLimiter(15*time.Minute, 3)

	for i := 0; i < 3; i++ {
		l.Allow("10.0.0.1")
	}
	assert.False(t, l.Allow("10.0.0.1"))

	*clock = clock.Add(16 * time.Minute)
	assert.True(t, l.Allow("10.0.0.1"))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(15*time.Minute, 1)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestLimiter_ConcurrentAccess(t *testing.T) {
	l := New(time.Minute, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Allow("10.0.0.1")
			}
		}()
	}
	wg.Wait()

	// Budget exhausted exactly after 1000 recorded attempts.
	assert.False(t, l.Allow("10.0.0.1"))
}
