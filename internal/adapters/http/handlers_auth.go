package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"flightdesk/internal/adapters/http/middleware"
	"flightdesk/internal/application/orchestrators"
)

// safeReturnURL accepts only site-local paths so the login redirect can
// never leave the application.
func safeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	return raw
}

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, roleHome(sess.Principal.Role), http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"ReturnURL": safeReturnURL(r.URL.Query().Get("returnUrl")),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("correo"),
			Password: r.FormValue("password"),
		}
		returnURL := safeReturnURL(r.FormValue("returnUrl"))

		sess, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
			Backend:      deps.Backend,
			SessionStore: deps.Sessions,
			SessionTTL:   deps.Config.SessionTTL,
		})
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, orchestrators.ErrBackendUnreachable) {
				status = http.StatusBadGateway
			}
			w.WriteHeader(status)
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"ReturnURL": returnURL,
				"Error":     err.Error(),
			})
			return
		}

		middleware.SetSessionCookie(w, sess.Token, int(sess.ExpiresAt.Sub(timeNow()).Seconds()))
		if returnURL != "" {
			http.Redirect(w, r, returnURL, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, roleHome(sess.Principal.Role), http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if token := middleware.SessionToken(r); token != "" {
		controllers.drop(token)
		_ = orchestrators.ExecuteLogout(r.Context(), token, orchestrators.LogoutDeps{
			Backend:      backendFor(r),
			SessionStore: deps.Sessions,
		})
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleUnauthorized renders the access denied page.
func handleUnauthorized(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusForbidden)
	renderTemplate(w, r, "unauthorized.html", map[string]any{})
}

// handleRoot sends an authenticated user to their role's home page and
// everyone else to the login form.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, roleHome(sess.Principal.Role), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
