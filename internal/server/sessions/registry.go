// Package sessions implements the in-memory session registry.
//
// Sessions live only in process memory: a restart invalidates every session
// by design. Expiry is sliding — each successful validation pushes the
// deadline forward by the configured TTL — and is checked lazily on access,
// so expired-but-untouched entries are reclaimed on their next lookup.
package sessions

import (
	"sync"
	"time"

	"github.com/autotransformers/site/internal/common"
)

// sessionIDSize is the number of random bytes behind a session identifier,
// well above the 128-bit minimum needed to make guessing infeasible.
const sessionIDSize = 24

type session struct {
	userID    string
	expiresAt time.Time
}

// Registry maps session identifiers to user ids with a sliding expiration.
// All methods are safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]session
}

// NewRegistry creates an empty registry whose sessions expire ttl after
// their last successful validation.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]session),
	}
}

// Create registers a new session for userID and returns its identifier.
func (r *Registry) Create(userID string) (string, error) {
	id, err := common.MakeRandHexString(sessionIDSize)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = session{userID: userID, expiresAt: r.now().Add(r.ttl)}
	return id, nil
}

// Validate looks up a session. An expired session is deleted and reported as
// absent; a live one has its expiry extended to now+ttl before the user id
// is returned.
func (r *Registry) Validate(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return "", false
	}
	if r.now().After(s.expiresAt) {
		delete(r.sessions, id)
		return "", false
	}

	s.expiresAt = r.now().Add(r.ttl)
	r.sessions[id] = s
	return s.userID, true
}

// Destroy removes a session. Destroying an unknown id is not an error.
func (r *Registry) Destroy(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
