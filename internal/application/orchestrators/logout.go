package orchestrators

import (
	"context"
	"log/slog"
)

// BackendLogout defines the backend call needed by Logout.
type BackendLogout interface {
	Logout(ctx context.Context) error
}

// SessionStoreForLogout defines the store interface needed by Logout.
type SessionStoreForLogout interface {
	Delete(ctx context.Context, token string) error
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Backend      BackendLogout
	SessionStore SessionStoreForLogout
}

// ExecuteLogout invalidates the backend token and removes the session.
// The backend call is best-effort: the local session is always cleared,
// even when the backend is unreachable or the token already expired.
// PRE: token identifies an existing or already-removed session
// POST: Session is gone locally
func ExecuteLogout(ctx context.Context, token string, deps LogoutDeps) error {
	if deps.Backend != nil {
		if err := deps.Backend.Logout(ctx); err != nil {
			slog.Warn("auth_event", "event", "logout_backend_failed", "error", err)
		}
	}

	if err := deps.SessionStore.Delete(ctx, token); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "logout")
	return nil
}
