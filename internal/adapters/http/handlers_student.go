package web

import (
	"net/http"
	"sort"

	"flightdesk/internal/adapters/api"
	"flightdesk/internal/adapters/http/middleware"
	"flightdesk/internal/domain/flight"
)

// handleStudentDashboard handles GET /alumno/dashboard: quick stats,
// upcoming flights and the monthly activity summary.
func handleStudentDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	result, err := backendFor(r).Flights(r.Context(), api.FlightFilter{StudentID: sess.Principal.ID})
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	flights := result.Items

	upcoming := make([]flight.Flight, 0, 3)
	today := timeNow().Format(flight.DateLayout)
	for _, f := range flights {
		if f.Status == flight.StatusScheduled && f.Date >= today {
			upcoming = append(upcoming, f)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].StartTime < upcoming[j].StartTime
	})
	if len(upcoming) > 3 {
		upcoming = upcoming[:3]
	}

	data := map[string]any{
		"QuickStats": flight.ComputeQuickStats(flights, timeNow()),
		"Upcoming":   upcoming,
		"ByMonth":    flight.GroupByMonth(flights, 6),
		"Hours":      flight.CompletedHours(flights),
		"Completed":  flight.CountByStatus(flights, flight.StatusCompleted),
		"Total":      len(flights),
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "student_dashboard.html", data)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// handleStudentFlights handles GET /alumno/mis-vuelos
func handleStudentFlights(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	lq := parseListQuery(r)
	result, err := backendFor(r).Flights(r.Context(), api.FlightFilter{
		StudentID: sess.Principal.ID,
		Status:    lq.Status,
		DateFrom:  lq.DateFrom,
		DateTo:    lq.DateTo,
		PerPage:   lq.PerPage,
		Page:      lq.Page,
	})
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	data := map[string]any{
		"Flights":  result.Items,
		"Query":    lq,
		"Statuses": flight.ValidStatuses,
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "student_flights.html", data)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// handleStudentHistory handles GET /alumno/historial: completed flights
// together with the student's own logbook entries and ratings.
func handleStudentHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	client := backendFor(r)

	result, err := client.StudentFlightHistory(r.Context(), api.FlightFilter{Status: flight.StatusCompleted})
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	progress, err := client.MyProgress(r.Context())
	if err != nil {
		handleAPIError(w, r, err)
		return
	}

	data := map[string]any{
		"Flights":  result.Items,
		"Progress": progress,
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "student_history.html", data)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// handleStudentProgress handles GET /alumno/mi-progreso
func handleStudentProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	client := backendFor(r)

	progress, err := client.MyProgress(r.Context())
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	result, err := client.Flights(r.Context(), api.FlightFilter{StudentID: sess.Principal.ID})
	if err != nil {
		handleAPIError(w, r, err)
		return
	}
	flights := result.Items
	completed := flight.CountByStatus(flights, flight.StatusCompleted)

	data := map[string]any{
		"Progress": progress,
		"Percent":  flight.ProgressPercent(completed, len(flights)),
		"ByMonth":  flight.GroupByMonth(flights, 6),
		"Hours":    flight.CompletedHours(flights),
		"Total":    len(flights),
		"Complete": completed,
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "student_progress.html", data)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
