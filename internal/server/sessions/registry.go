// Package sessions holds the in-memory registry of browser sessions.
package sessions

import (
	"sync"
	"time"

	"github.com/Berkcanaskin/stellar/internal/common"
)

const tokenBytes = 18

func newToken() string {
	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		// same condition under which crypto/rand itself is unusable
		panic(err)
	}
	return token
}

type session struct {
	username  string
	expiresAt time.Time
}

// Registry maps opaque hex tokens to logged-in usernames. Tokens expire
// after the configured TTL; expired entries are dropped lazily on lookup.
type Registry struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]session

	now func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		sessions: make(map[string]session),
		now:      time.Now,
	}
}

// Issue creates a session for the user and returns its token.
func (r *Registry) Issue(username string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	token := newToken()
	for {
		if _, ok := r.sessions[token]; !ok {
			break
		}
		token = newToken()
	}

	r.sessions[token] = session{
		username:  username,
		expiresAt: r.now().Add(r.ttl),
	}
	return token
}

// Resolve returns the username behind the token. Unknown and expired
// tokens both come back as common.ErrorUnauthorized so callers cannot
// tell them apart.
func (r *Registry) Resolve(token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return "", common.ErrorUnauthorized
	}
	if r.now().After(s.expiresAt) {
		delete(r.sessions, token)
		return "", common.ErrorUnauthorized
	}
	return s.username, nil
}

// Revoke drops the session if it exists.
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}
