package web

import (
	"context"
	"net/http"
	"unicode/utf8"

	"flightdesk/internal/adapters/http/middleware"
	"flightdesk/internal/application/typeahead"
	"flightdesk/internal/domain/principal"
)

// searchResponse is what the typeahead widgets poll for.
type searchResponse struct {
	Options   []typeahead.Option `json:"opciones"`
	Searching bool               `json:"buscando"`
}

// handleSearch serves the form typeaheads. Each keystroke arrives as
// GET /api/buscar-{usuarios,avionetas}?q=<text>; the debounced lookup
// runs in the background and the widget polls until Searching clears.
func handleSearch(w http.ResponseWriter, r *http.Request, pick func(*sessionControllers) *typeahead.Controller) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	ctl := pick(controllers.get(sess))

	q := r.URL.Query().Get("q")
	if utf8.RuneCountInString(q) < typeahead.MinQueryLen {
		ctl.Clear()
		writeJSON(w, http.StatusOK, searchResponse{Options: []typeahead.Option{}})
		return
	}

	// Detached context: the debounced search outlives this request.
	ctl.Input(context.WithoutCancel(r.Context()), q)
	opts := ctl.Options()
	if opts == nil {
		opts = []typeahead.Option{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Options: opts, Searching: ctl.Searching()})
}

// handleUserSearch handles GET /api/buscar-usuarios?q=<text>&rol=<role>
func handleUserSearch(w http.ResponseWriter, r *http.Request) {
	handleSearch(w, r, func(sc *sessionControllers) *typeahead.Controller {
		if r.URL.Query().Get("rol") == principal.RoleTutor {
			return sc.tutorSearch
		}
		return sc.studentSearch
	})
}

// handleAircraftSearch handles GET /api/buscar-avionetas?q=<text>
func handleAircraftSearch(w http.ResponseWriter, r *http.Request) {
	handleSearch(w, r, func(sc *sessionControllers) *typeahead.Controller {
		return sc.aircraftSearch
	})
}
