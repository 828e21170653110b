package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"flightdesk/internal/adapters/api"
	"flightdesk/internal/adapters/http/middleware"
	"flightdesk/internal/application/orchestrators"
	"flightdesk/internal/domain/flightlog"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), so
// notification bodies coming from the backend cannot inject markup.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// backendFor returns the API client bound to the session's bearer token,
// or the anonymous client when there is no session.
func backendFor(r *http.Request) *api.Client {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		return deps.Backend.WithToken(sess.APIToken)
	}
	return deps.Backend
}

// handleAPIError translates a backend failure into the right response.
// An expired or revoked token tears down the local session and sends the
// browser back to the login page.
func handleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	switch api.KindOf(err) {
	case api.KindUnauthorized:
		if token := middleware.SessionToken(r); token != "" {
			controllers.drop(token)
			if derr := deps.Sessions.Delete(r.Context(), token); derr != nil {
				slog.Warn("session_delete_failed", "error", derr.Error())
			}
		}
		middleware.ClearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case api.KindForbidden:
		http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
	case api.KindNotFound:
		http.NotFound(w, r)
	case api.KindValidation:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case api.KindTransport:
		slog.Error("backend_unreachable", "error", err.Error())
		http.Error(w, orchestrators.ErrBackendUnreachable.Error(), http.StatusBadGateway)
	default:
		internalError(w, err)
	}
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	role := ""
	name := ""
	initials := ""
	unread := 0
	if ok {
		role = sess.Principal.Role
		name = sess.Principal.DisplayName()
		initials = sess.Principal.Initials()
		unread = controllers.get(sess).poller.Count()
	}
	path := r.URL.Path

	funcMap := template.FuncMap{
		"currentRole":  func() string { return role },
		"currentName":  func() string { return name },
		"userInitials": func() string { return initials },
		"isLoggedIn":   func() bool { return role != "" },
		"unreadCount":  func() int { return unread },
		"pageTitle":    func() string { return pageTitle(path, role) },
		"pageSubtitle": func() string { return pageSubtitle(path) },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"stars":       flightlog.Stars,
		"ratingColor": flightlog.RatingColor,
		"add":         func(a, b int) int { return a + b },
		"sub":         func(a, b int) int { return a - b },
		"hours": func(h float64) string {
			return strconv.FormatFloat(h, 'f', 1, 64)
		},
		"paginationQuery": func(page int, q listQuery) template.URL {
			parts := []string{fmt.Sprintf("page=%d", page)}
			if q.Status != "" {
				parts = append(parts, "estado="+q.Status)
			}
			if q.DateFrom != "" {
				parts = append(parts, "fecha_inicio="+q.DateFrom)
			}
			if q.DateTo != "" {
				parts = append(parts, "fecha_fin="+q.DateTo)
			}
			if q.Search != "" {
				parts = append(parts, "search="+q.Search)
			}
			if q.PerPage > 0 {
				parts = append(parts, fmt.Sprintf("per_page=%d", q.PerPage))
			}
			return template.URL(strings.Join(parts, "&"))
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// listQuery is the common list filter carried through pagination links.
type listQuery struct {
	Status   string
	DateFrom string
	DateTo   string
	Search   string
	PerPage  int
	Page     int
}

// parseListQuery reads the list filter from the request query, using the
// backend's wire parameter names.
func parseListQuery(r *http.Request) listQuery {
	q := r.URL.Query()
	lq := listQuery{
		Status:   q.Get("estado"),
		DateFrom: q.Get("fecha_inicio"),
		DateTo:   q.Get("fecha_fin"),
		Search:   q.Get("search"),
		Page:     1,
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		lq.Page = p
	}
	if pp, err := strconv.Atoi(q.Get("per_page")); err == nil && pp > 0 {
		lq.PerPage = pp
	}
	return lq
}

func formInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(name)))
	return n
}

func formFloat(r *http.Request, name string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(r.FormValue(name)), 64)
	return f
}

func formBool(r *http.Request, name string) bool {
	v := r.FormValue(name)
	return v == "true" || v == "on" || v == "1"
}

// pathID extracts the numeric {id} segment from the route pattern.
func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
