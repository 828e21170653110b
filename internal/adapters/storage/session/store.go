package session

import (
	"context"

	domain "flightdesk/internal/domain/session"
)

// Store persists sessions. Implementations: SQLite (default) and Redis.
type Store interface {
	// Get returns the session for a cookie token. Expired sessions are
	// removed and reported as domain.ErrExpired.
	Get(ctx context.Context, token string) (domain.Session, error)
	// Save persists a session, replacing any session with the same token.
	Save(ctx context.Context, s domain.Session) error
	// Delete removes a session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
	// DeleteExpired removes every session past its expiry.
	DeleteExpired(ctx context.Context) error
}
