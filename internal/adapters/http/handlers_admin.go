package web

import (
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"flightdesk/internal/adapters/api"
	"flightdesk/internal/application/listutil"
	"flightdesk/internal/domain/aircraft"
	"flightdesk/internal/domain/flight"
	"flightdesk/internal/domain/user"
)

// handleAdminDashboard renders the admin landing page with the three
// stat blocks and the recent flight list.
func handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	client := backendFor(r)
	ctx := r.Context()

	userStats, err := client.UserStats(ctx)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	aircraftStats, err := client.AircraftStats(ctx)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	flightStats, err := client.FlightStats(ctx)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	recent, err := client.Flights(ctx, api.FlightFilter{PerPage: 5, Page: 1})
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	data := map[string]any{
		"UserStats":     userStats,
		"AircraftStats": aircraftStats,
		"FlightStats":   flightStats,
		"RecentFlights": recent.Items,
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_dashboard.html", data)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// handleAdminUsers handles GET (list) and POST (create) for /admin/usuarios
func handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	client := backendFor(r)
	ctx := r.Context()

	if r.Method == "GET" {
		q := r.URL.Query()
		filter := api.UserFilter{
			Role:   q.Get("rol"),
			Search: q.Get("search"),
		}
		if v := q.Get("activo"); v != "" {
			active := v == "true"
			filter.Active = &active
		}
		users, err := client.Users(ctx, filter)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		stats, err := client.UserStats(ctx)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		tutors, err := client.Tutors(ctx)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_users.html", map[string]any{
				"Users":     users,
				"Stats":     stats,
				"Tutors":    tutors,
				"Role":      filter.Role,
				"Search":    filter.Search,
				"CSRFToken": csrf.Token(r),
			})
			return
		}
		writeJSON(w, http.StatusOK, users)
		return
	}

	if r.Method == "POST" {
		form, err := parseUserForm(r)
		if err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		if err := validate.StructCtx(ctx, form); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := client.CreateUser(ctx, form)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/admin/usuarios", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusCreated, created)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAdminUserUpdate handles POST /admin/usuarios/{id}/editar
func handleAdminUserUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	form, err := parseUserForm(r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if err := validate.StructCtx(r.Context(), form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := backendFor(r).UpdateUser(r.Context(), id, form)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/usuarios", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleAdminUserDelete handles POST /admin/usuarios/{id}/eliminar
func handleAdminUserDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := backendFor(r).DeleteUser(r.Context(), id); err != nil {
		handleAPIError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/usuarios", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminUserActivate handles POST /admin/usuarios/{id}/activar.
// The backend toggles the active flag, reactivating a deactivated account.
func handleAdminUserActivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := backendFor(r).ActivateUser(r.Context(), id); err != nil {
		handleAPIError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/usuarios", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseUserForm(r *http.Request) (user.Form, error) {
	if r.Header.Get("Content-Type") == "application/json" {
		var form user.Form
		err := strictDecode(r, &form)
		return form, err
	}
	if err := r.ParseForm(); err != nil {
		return user.Form{}, err
	}
	return user.Form{
		FirstName:       r.FormValue("nombre"),
		LastName:        r.FormValue("apellido"),
		Email:           r.FormValue("correo"),
		Password:        r.FormValue("password"),
		Phone:           r.FormValue("telefono"),
		Role:            r.FormValue("rol"),
		AssignedTutorID: formInt(r, "tutor_asignado_id"),
		Notes:           r.FormValue("notas"),
	}, nil
}

// handleAdminAircraft handles GET (list) and POST (create) for /admin/avionetas
func handleAdminAircraft(w http.ResponseWriter, r *http.Request) {
	client := backendFor(r)
	ctx := r.Context()

	if r.Method == "GET" {
		q := r.URL.Query()
		list, err := client.ListAircraft(ctx, api.AircraftFilter{
			Status: q.Get("estado"),
			Search: q.Get("search"),
		})
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		stats, err := client.AircraftStats(ctx)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_aircraft.html", map[string]any{
				"Aircraft":  list,
				"Stats":     stats,
				"Status":    q.Get("estado"),
				"Search":    q.Get("search"),
				"CSRFToken": csrf.Token(r),
			})
			return
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	if r.Method == "POST" {
		form, err := parseAircraftForm(r)
		if err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		if err := validate.StructCtx(ctx, form); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := client.CreateAircraft(ctx, form)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/admin/avionetas", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusCreated, created)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAdminAircraftUpdate handles POST /admin/avionetas/{id}/editar
func handleAdminAircraftUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	form, err := parseAircraftForm(r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if err := validate.StructCtx(r.Context(), form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := backendFor(r).UpdateAircraft(r.Context(), id, form)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/avionetas", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleAdminAircraftDelete handles POST /admin/avionetas/{id}/eliminar
func handleAdminAircraftDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := backendFor(r).DeleteAircraft(r.Context(), id); err != nil {
		handleAPIError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/avionetas", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminAircraftStatus handles POST /admin/avionetas/{id}/estado,
// toggling between active and maintenance.
func handleAdminAircraftStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var status string
	if r.Header.Get("Content-Type") == "application/json" {
		var body struct {
			Status string `json:"estado"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		status = body.Status
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		status = r.FormValue("estado")
	}
	if !aircraft.ValidStatus(status) {
		http.Error(w, "estado inválido", http.StatusBadRequest)
		return
	}
	if err := backendFor(r).SetAircraftStatus(r.Context(), id, status); err != nil {
		handleAPIError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/avionetas", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseAircraftForm(r *http.Request) (aircraft.Form, error) {
	if r.Header.Get("Content-Type") == "application/json" {
		var form aircraft.Form
		err := strictDecode(r, &form)
		return form, err
	}
	if err := r.ParseForm(); err != nil {
		return aircraft.Form{}, err
	}
	return aircraft.Form{
		Code:        r.FormValue("codigo"),
		Model:       r.FormValue("modelo"),
		FlightHours: formFloat(r, "horas_vuelo"),
		Status:      r.FormValue("estado"),
		Notes:       r.FormValue("observaciones"),
	}, nil
}

// handleAdminFlights handles GET (paginated list) and POST (schedule)
// for /admin/vuelos
func handleAdminFlights(w http.ResponseWriter, r *http.Request) {
	client := backendFor(r)
	ctx := r.Context()

	if r.Method == "GET" {
		lq := parseListQuery(r)
		if lq.PerPage == 0 {
			lq.PerPage = listutil.DefaultPerPage
		}
		result, err := client.Flights(ctx, api.FlightFilter{
			Status:   lq.Status,
			DateFrom: lq.DateFrom,
			DateTo:   lq.DateTo,
			Search:   lq.Search,
			PerPage:  lq.PerPage,
			Page:     lq.Page,
		})
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		stats, err := client.FlightStats(ctx)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "admin_flights.html", map[string]any{
				"Flights":        result.Items,
				"Stats":          stats,
				"Query":          lq,
				"CurrentPage":    result.CurrentPage,
				"LastPage":       result.LastPage,
				"Total":          result.Total,
				"PageNumbers":    listutil.PageNumbers(result.CurrentPage, result.LastPage, 5),
				"Statuses":       flight.ValidStatuses,
				"PerPageOptions": listutil.PerPageOptions,
				"CSRFToken":      csrf.Token(r),
			})
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	if r.Method == "POST" {
		form, err := parseFlightForm(r)
		if err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		if err := validate.StructCtx(ctx, form); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := client.CreateFlight(ctx, form)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/admin/vuelos", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusCreated, created)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAdminFlightUpdate handles POST /admin/vuelos/{id}/editar
func handleAdminFlightUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	form, err := parseFlightForm(r)
	if err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if err := validate.StructCtx(r.Context(), form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := backendFor(r).UpdateFlight(r.Context(), id, form)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/vuelos", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleAdminFlightDelete handles POST /admin/vuelos/{id}/eliminar
func handleAdminFlightDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := backendFor(r).DeleteFlight(r.Context(), id); err != nil {
		handleAPIError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/vuelos", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminFlightStatus handles POST /admin/vuelos/{id}/estado
func handleAdminFlightStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	status := r.FormValue("estado")
	if !flight.ValidStatus(status) {
		http.Error(w, "estado inválido", http.StatusBadRequest)
		return
	}
	if err := backendFor(r).SetFlightStatus(r.Context(), id, status); err != nil {
		handleAPIError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/vuelos", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminLatency handles GET /api/admin/rendimiento: aggregated
// backend call latency for the diagnostics view. ?minutos= bounds the
// window (default 15).
func handleAdminLatency(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	minutes := atoiDefault(r.URL.Query().Get("minutos"), 15)
	if minutes <= 0 {
		minutes = 15
	}
	since := timeNow().Add(-time.Duration(minutes) * time.Minute)
	writeJSON(w, http.StatusOK, deps.Backend.Latency().Snapshot(since, 10))
}

func parseFlightForm(r *http.Request) (flight.Form, error) {
	if r.Header.Get("Content-Type") == "application/json" {
		var form flight.Form
		err := strictDecode(r, &form)
		return form, err
	}
	if err := r.ParseForm(); err != nil {
		return flight.Form{}, err
	}
	return flight.Form{
		StudentID:  formInt(r, "alumno_id"),
		TutorID:    formInt(r, "tutor_id"),
		AircraftID: formInt(r, "avioneta_id"),
		Date:       r.FormValue("fecha"),
		StartTime:  r.FormValue("hora_inicio"),
		EndTime:    r.FormValue("hora_fin"),
		Status:     r.FormValue("estado"),
		Notes:      r.FormValue("observaciones"),
	}, nil
}
