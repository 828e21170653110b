package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"flightdesk/internal/adapters/api"
	"flightdesk/internal/domain/session"
)

// AuthBackend defines the backend calls needed by Login.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (api.LoginResponse, error)
}

// SessionStoreForLogin defines the store interface needed by Login.
type SessionStoreForLogin interface {
	Save(ctx context.Context, s session.Session) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Backend      AuthBackend
	SessionStore SessionStoreForLogin
	SessionTTL   time.Duration
}

var (
	ErrInvalidCredentials = errors.New("correo o contraseña incorrectos")
	ErrAccountInactive    = errors.New("la cuenta está desactivada")
	ErrBackendUnreachable = errors.New("no se pudo contactar al servidor")
)

// ExecuteLogin authenticates against the backend and persists a session.
// Nothing is stored unless the backend accepts the credentials, so a failed
// login leaves no partial session behind.
// PRE: Valid email and password provided
// POST: Returns a persisted session on success
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (session.Session, error) {
	if input.Email == "" || input.Password == "" {
		return session.Session{}, ErrInvalidCredentials
	}

	resp, err := deps.Backend.Login(ctx, input.Email, input.Password)
	if err != nil {
		switch api.KindOf(err) {
		case api.KindValidation, api.KindUnauthorized:
			slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "bad_credentials")
			return session.Session{}, ErrInvalidCredentials
		case api.KindForbidden:
			slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "inactive")
			return session.Session{}, ErrAccountInactive
		case api.KindTransport:
			slog.Error("auth_event", "event", "login_failed", "email", input.Email, "reason", "backend_unreachable", "error", err)
			return session.Session{}, ErrBackendUnreachable
		default:
			return session.Session{}, err
		}
	}

	if err := resp.Principal.Validate(); err != nil {
		slog.Error("auth_event", "event", "login_failed", "email", input.Email, "reason", "bad_principal", "error", err)
		return session.Session{}, err
	}

	ttl := deps.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	now := time.Now()
	sess := session.Session{
		Token:     uuid.New().String(),
		APIToken:  resp.AccessToken,
		Principal: resp.Principal,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	if err := deps.SessionStore.Save(ctx, sess); err != nil {
		return session.Session{}, err
	}

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", resp.Principal.Role)
	return sess, nil
}
