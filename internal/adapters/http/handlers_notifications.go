package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"flightdesk/internal/adapters/http/middleware"
	"flightdesk/internal/domain/notification"
)

// handleNotifications handles GET /notificaciones, optionally filtered
// by read state (?leida=true|false).
func handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var read *bool
	if v := r.URL.Query().Get("leida"); v != "" {
		b := v == "true"
		read = &b
	}
	list, err := backendFor(r).Notifications(r.Context(), read)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	if list == nil {
		list = []notification.Notification{}
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "notifications.html", map[string]any{
			"Notifications": list,
			"Unread":        notification.CountUnread(list),
			"CSRFToken":     csrf.Token(r),
		})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleNotificationCount handles GET /api/notificaciones/count, the
// JSON endpoint the shell badge polls. It reads the poller's cached
// count rather than hitting the backend on every request.
func handleNotificationCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": controllers.get(sess).poller.Count()})
}

// refreshBadge nudges the session's poller so the badge reflects a
// mutation without waiting for the next tick.
func refreshBadge(r *http.Request) {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		controllers.get(sess).poller.Refresh(r.Context())
	}
}

// handleNotificationMarkRead handles POST /notificaciones/{id}/marcar-leida
func handleNotificationMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := backendFor(r).MarkRead(r.Context(), id); err != nil {
		handleAPIError(w, r, err)
		return
	}
	refreshBadge(r)
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/notificaciones", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleNotificationMarkAllRead handles POST /notificaciones/marcar-todas-leidas
func handleNotificationMarkAllRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := backendFor(r).MarkAllRead(r.Context()); err != nil {
		handleAPIError(w, r, err)
		return
	}
	refreshBadge(r)
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/notificaciones", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleNotificationDelete handles POST /notificaciones/{id}/eliminar
func handleNotificationDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := backendFor(r).DeleteNotification(r.Context(), id); err != nil {
		handleAPIError(w, r, err)
		return
	}
	refreshBadge(r)
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/notificaciones", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
