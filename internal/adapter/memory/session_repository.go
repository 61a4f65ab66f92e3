package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/mergington/internal/domain"
)

const tokenBytes = 32

type SessionRepo struct {
	clock clockwork.Clock

	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionRepo(clock clockwork.Clock) *SessionRepo {
	return &SessionRepo{
		clock:    clock,
		sessions: make(map[string]domain.Session),
	}
}

func (r *SessionRepo) Create(_ context.Context, username string) (domain.Session, error) {
	token, err := newToken()
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{
		Token:     token,
		Username:  username,
		CreatedAt: r.clock.Now(),
	}

	r.mu.Lock()
	r.sessions[token] = session
	r.mu.Unlock()

	return session, nil
}

func (r *SessionRepo) Resolve(_ context.Context, token string) (string, bool) {
	if token == "" {
		return "", false
	}

	r.mu.RLock()
	session, ok := r.sessions[token]
	r.mu.RUnlock()

	return session.Username, ok
}

func (r *SessionRepo) RevokeAllForUser(_ context.Context, username string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	revoked := 0
	for token, session := range r.sessions {
		if session.Username == username {
			delete(r.sessions, token)
			revoked++
		}
	}
	return revoked
}

func (r *SessionRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
