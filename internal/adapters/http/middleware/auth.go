package middleware

import (
	"context"
	"net/http"
	"net/url"

	sessionstore "flightdesk/internal/adapters/storage/session"
	"flightdesk/internal/domain/principal"
	"flightdesk/internal/domain/session"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

const sessionCookieName = "flightdesk_session"

// Auth returns middleware that resolves the session cookie against the
// durable store and sets the session in context. It does NOT block
// unauthenticated requests; use RequireAuth or RequireRole for that.
func Auth(store sessionstore.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err == nil && cookie.Value != "" {
				if sess, err := store.Get(r.Context(), cookie.Value); err == nil {
					ctx := context.WithValue(r.Context(), sessionContextKey, sess)
					r = r.WithContext(ctx)
				} else {
					// Unknown or expired token: drop the stale cookie so the
					// browser stops presenting it.
					ClearSessionCookie(w)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns middleware that redirects unauthenticated requests to
// the login page, preserving the attempted URL so login can return there.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole returns middleware that blocks requests from principals
// without one of the given roles. Unauthenticated requests go to login;
// authenticated but wrong-role requests go to the unauthorized page.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]bool, len(roles))
	for _, role := range roles {
		roleSet[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSessionFromContext(r.Context())
			if !ok {
				redirectToLogin(w, r)
				return
			}
			if !roleSet[sess.Principal.Role] {
				http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// redirectToLogin sends the browser to /login with the attempted URL
// (path plus query) in returnUrl.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, "/login?returnUrl="+url.QueryEscape(target), http.StatusSeeOther)
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(session.Session)
	return sess, ok
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   false, // Allow HTTP for local development
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   maxAge,
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// SessionToken returns the raw session cookie value, if present.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// IsRole checks if the current session has one of the given roles.
func IsRole(ctx context.Context, roles ...string) bool {
	sess, ok := GetSessionFromContext(ctx)
	if !ok {
		return false
	}
	return sess.Principal.HasRole(roles...)
}

// IsAdmin checks if the current session is an administrator.
func IsAdmin(ctx context.Context) bool {
	return IsRole(ctx, principal.RoleAdmin)
}

// IsTutor checks if the current session is a tutor.
func IsTutor(ctx context.Context) bool {
	return IsRole(ctx, principal.RoleTutor)
}

// IsStudent checks if the current session is a student.
func IsStudent(ctx context.Context) bool {
	return IsRole(ctx, principal.RoleStudent)
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}
