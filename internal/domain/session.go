package domain

import (
	"context"
	"time"
)

// Session binds an opaque bearer token to a teacher.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
}

// SessionRepository issues, resolves and revokes bearer sessions.
// Sessions never expire on their own.
type SessionRepository interface {
	Create(ctx context.Context, username string) (Session, error)
	Resolve(ctx context.Context, token string) (string, bool)
	RevokeAllForUser(ctx context.Context, username string) int
	Count() int
}
