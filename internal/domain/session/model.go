package session

import (
	"errors"
	"time"

	"flightdesk/internal/domain/principal"
)

// Domain errors
var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Session binds a browser cookie token to the backend bearer token and the
// authenticated principal. Sessions are durable so a restart of this server
// does not log anyone out.
type Session struct {
	Token     string              // opaque cookie value, primary key
	APIToken  string              // backend bearer token
	Principal principal.Principal `json:"principal"`
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session passed its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Validate checks that a freshly created or restored Session is usable.
// PRE: Session struct is populated
// POST: Returns nil if valid, error otherwise
func (s Session) Validate() error {
	if s.Token == "" {
		return errors.New("session token cannot be empty")
	}
	if s.APIToken == "" {
		return errors.New("session api token cannot be empty")
	}
	return s.Principal.Validate()
}
