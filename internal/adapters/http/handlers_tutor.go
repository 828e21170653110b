package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"flightdesk/internal/adapters/api"
	"flightdesk/internal/adapters/http/middleware"
	"flightdesk/internal/application/orchestrators"
	"flightdesk/internal/domain/aircraft"
	"flightdesk/internal/domain/flight"
	"flightdesk/internal/domain/flightlog"
	"flightdesk/internal/domain/tutoring"
)

// handleTutorFlights handles GET /tutor/mis-vuelos: the tutor's calendar
// with quick stats and per-status filtering.
func handleTutorFlights(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	client := backendFor(r)
	lq := parseListQuery(r)

	result, err := client.MyFlights(r.Context(), api.FlightFilter{
		Status:   lq.Status,
		DateFrom: lq.DateFrom,
		DateTo:   lq.DateTo,
		PerPage:  lq.PerPage,
		Page:     lq.Page,
	})
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	data := map[string]any{
		"Flights":    result.Items,
		"QuickStats": flight.ComputeQuickStats(result.Items, timeNow()),
		"Query":      lq,
		"Statuses":   flight.ValidStatuses,
		"CSRFToken":  csrf.Token(r),
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "tutor_flights.html", data)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// handleTutorFlightStatus handles POST /tutor/vuelo/{id}/estado.
// Tutors may only move their own flights between states; the backend
// enforces ownership and transition rules.
func handleTutorFlightStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var update flight.StatusUpdate
	if r.Header.Get("Content-Type") == "application/json" {
		if err := strictDecode(r, &update); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		update = flight.StatusUpdate{
			Status:  r.FormValue("estado"),
			Notes:   r.FormValue("observaciones"),
			EndTime: r.FormValue("hora_fin"),
		}
	}
	if err := validate.StructCtx(r.Context(), update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := backendFor(r).UpdateFlightStatusAsTutor(r.Context(), id, update)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/tutor/mis-vuelos", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleTutorFlightLog handles GET (view/prefill) and POST (create) for
// /tutor/bitacora/vuelo/{id}
func handleTutorFlightLog(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	client := backendFor(r)
	ctx := r.Context()

	if r.Method == "GET" {
		fl, err := client.Flight(ctx, id)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		maneuvers, err := client.Maneuvers(ctx)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		// An existing entry prefills the form; absence means a fresh one.
		entry, err := client.FlightLog(ctx, id)
		if err != nil && api.KindOf(err) != api.KindNotFound {
			handleAPIError(w, r, err)
			return
		}

		data := map[string]any{
			"Flight":    fl,
			"Entry":     entry,
			"HasEntry":  entry.ID != 0,
			"Maneuvers": maneuvers,
			"CSRFToken": csrf.Token(r),
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "tutor_flightlog.html", data)
			return
		}
		writeJSON(w, http.StatusOK, data)
		return
	}

	if r.Method == "POST" {
		entry, err := parseFlightLogForm(r)
		if err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		if err := validate.StructCtx(ctx, entry); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := client.CreateFlightLog(ctx, id, entry)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/tutor/mis-vuelos", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusCreated, created)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func parseFlightLogForm(r *http.Request) (flightlog.Entry, error) {
	if r.Header.Get("Content-Type") == "application/json" {
		var entry flightlog.Entry
		err := strictDecode(r, &entry)
		return entry, err
	}
	if err := r.ParseForm(); err != nil {
		return flightlog.Entry{}, err
	}
	return flightlog.Entry{
		OverallRating:       formFloat(r, "calificacion_general"),
		TakeoffRating:       formFloat(r, "calificacion_despegue"),
		FlightRating:        formFloat(r, "calificacion_vuelo"),
		LandingRating:       formFloat(r, "calificacion_aterrizaje"),
		CommunicationRating: formFloat(r, "calificacion_comunicacion"),
		Maneuvers:           r.Form["maniobras_realizadas"],
		TechnicalNotes:      r.FormValue("observaciones_tecnicas"),
		GeneralNotes:        r.FormValue("observaciones_generales"),
		AreasToImprove:      r.FormValue("areas_mejorar"),
		Achievements:        r.FormValue("logros"),
		Weather:             r.FormValue("condiciones_climaticas"),
		Visibility:          r.FormValue("visibilidad"),
		Wind:                r.FormValue("viento"),
		RealHours:           formFloat(r, "horas_vuelo_real"),
		SimulatorHours:      formFloat(r, "horas_vuelo_simulador"),
		Landings:            formInt(r, "numero_aterrizajes"),
		Takeoffs:            formInt(r, "numero_despegues"),
		HadIncident:         formBool(r, "hubo_incidente"),
		IncidentDescription: r.FormValue("descripcion_incidente"),
	}, nil
}

// handleTutorStudents handles GET /tutor/mis-alumnos
func handleTutorStudents(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	students, err := backendFor(r).MyStudents(r.Context())
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	// Roster search is a plain substring match over the loaded list.
	if search := strings.ToLower(r.URL.Query().Get("search")); search != "" {
		filtered := make([]tutoring.StudentOverview, 0, len(students))
		for _, s := range students {
			name := strings.ToLower(s.FirstName + " " + s.LastName)
			if strings.Contains(name, search) || strings.Contains(strings.ToLower(s.Email), search) {
				filtered = append(filtered, s)
			}
		}
		students = filtered
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "tutor_students.html", map[string]any{
			"Students": students,
			"Search":   r.URL.Query().Get("search"),
		})
		return
	}
	writeJSON(w, http.StatusOK, students)
}

// handleTutorStudentProgress handles GET /tutor/alumno/{id}/progreso
func handleTutorStudentProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, err := pathID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	progress, err := backendFor(r).StudentProgress(r.Context(), id)
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "tutor_student_progress.html", map[string]any{
			"Progress": progress,
		})
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// handleTutorReports handles GET /tutor/reportes: the tutor's own
// performance summary, computed from their flight history.
func handleTutorReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	client := backendFor(r)
	result, err := client.MyFlights(r.Context(), api.FlightFilter{})
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	flights := result.Items
	students, err := client.MyStudents(r.Context())
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	data := map[string]any{
		"Total":        len(flights),
		"Completed":    flight.CountByStatus(flights, flight.StatusCompleted),
		"Scheduled":    flight.CountByStatus(flights, flight.StatusScheduled),
		"Cancelled":    flight.CountByStatus(flights, flight.StatusCancelled),
		"Hours":        flight.CompletedHours(flights),
		"ByMonth":      flight.GroupByMonth(flights, 6),
		"QuickStats":   flight.ComputeQuickStats(flights, timeNow()),
		"BestStudents": tutoring.BestStudents(students, 5),
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "tutor_reports.html", data)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// handleTutorFaults handles GET (list + form) and POST (file report)
// for /tutor/reportar-fallas
func handleTutorFaults(w http.ResponseWriter, r *http.Request) {
	client := backendFor(r)
	ctx := r.Context()

	if r.Method == "GET" {
		faults, err := client.FaultReports(ctx)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		fleet, err := client.ListAircraft(ctx, api.AircraftFilter{})
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "tutor_faults.html", map[string]any{
				"Faults":    faults,
				"Fleet":     fleet,
				"CSRFToken": csrf.Token(r),
			})
			return
		}
		writeJSON(w, http.StatusOK, faults)
		return
	}

	if r.Method == "POST" {
		report, err := parseFaultForm(r)
		if err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		reporter := ""
		if sess, ok := middleware.GetSessionFromContext(ctx); ok {
			reporter = sess.Principal.DisplayName()
		}
		filed, err := orchestrators.ExecuteReportFault(ctx, report, reporter, orchestrators.ReportFaultDeps{
			Backend:          client,
			Sender:           deps.Email,
			MaintenanceEmail: deps.Config.MaintenanceEmail,
			Validate:         validate,
		})
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/tutor/reportar-fallas", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusCreated, filed)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func parseFaultForm(r *http.Request) (aircraft.FaultReport, error) {
	if r.Header.Get("Content-Type") == "application/json" {
		var report aircraft.FaultReport
		err := strictDecode(r, &report)
		return report, err
	}
	if err := r.ParseForm(); err != nil {
		return aircraft.FaultReport{}, err
	}
	return aircraft.FaultReport{
		AircraftID:  formInt(r, "avioneta_id"),
		FaultType:   r.FormValue("tipo_falla"),
		Severity:    r.FormValue("severidad"),
		Description: r.FormValue("descripcion"),
		Urgent:      formBool(r, "requiere_atencion_inmediata"),
	}, nil
}

// handleTutorAvailability handles GET (week view) and POST (save slot)
// for /tutor/disponibilidad
func handleTutorAvailability(w http.ResponseWriter, r *http.Request) {
	client := backendFor(r)
	ctx := r.Context()

	if r.Method == "GET" {
		slots, err := client.Availability(ctx)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "tutor_availability.html", map[string]any{
				"Slots":     slots,
				"CSRFToken": csrf.Token(r),
			})
			return
		}
		writeJSON(w, http.StatusOK, slots)
		return
	}

	if r.Method == "POST" {
		var slot tutoring.Availability
		if r.Header.Get("Content-Type") == "application/json" {
			if err := strictDecode(r, &slot); err != nil {
				http.Error(w, "invalid JSON", http.StatusBadRequest)
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			slot = tutoring.Availability{
				Date:      r.FormValue("fecha"),
				StartTime: r.FormValue("hora_inicio"),
				EndTime:   r.FormValue("hora_fin"),
				Available: formBool(r, "disponible"),
				Notes:     r.FormValue("notas"),
			}
		}
		if err := validate.StructCtx(ctx, slot); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		saved, err := client.SaveAvailability(ctx, slot)
		if err != nil {
			handleAPIError(w, r, err)
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/tutor/disponibilidad", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleTutorAvailableAircraft handles GET /api/tutor/avionetas-disponibles,
// the JSON source for the fault report and status forms.
func handleTutorAvailableAircraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	fleet, err := backendFor(r).AvailableAircraft(r.Context())
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	if fleet == nil {
		fleet = []aircraft.Aircraft{}
	}
	writeJSON(w, http.StatusOK, fleet)
}
