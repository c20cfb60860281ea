// Package ratelimit implements a fixed-window attempt counter keyed by
// client identity (typically the remote IP).
//
// Fixed windows permit brief bursts around window boundaries; that is an
// accepted approximation here, not a precision guarantee. Entries are never
// evicted, so the map grows with the number of distinct clients — a known
// resource concern for long-lived processes facing many addresses.
package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	count       int
	windowStart time.Time
}

// Limiter counts attempts per client within a fixed window. All methods are
// safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	now     func() time.Time
	entries map[string]*entry
}

// New creates a limiter allowing at most max attempts per window for each
// client identity.
func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		window:  window,
		max:     max,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Allow records one attempt for clientID and reports whether it is within
// budget. Every call counts against the window, successful logins included.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	e, ok := l.entries[clientID]
	if !ok {
		e = &entry{windowStart: now}
		l.entries[clientID] = e
	}

	if now.Sub(e.windowStart) > l.window {
		e.count = 0
		e.windowStart = now
	}

	e.count++
	return e.count <= l.max
}
