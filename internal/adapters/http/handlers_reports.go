package web

import (
	"context"
	"net/http"
	"strconv"

	"flightdesk/internal/adapters/http/middleware"
	"flightdesk/internal/application/reports"
	"flightdesk/internal/domain/report"
)

// reportsFor returns the session's report controller. ok is false when
// there is no session, which the route guards should already prevent.
func reportsFor(r *http.Request) (*reports.Controller, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		return nil, false
	}
	return controllers.get(sess).reports, true
}

func validReportTab(tab string) bool {
	if tab == reports.TabGeneral || tab == report.KindHeatMap {
		return true
	}
	for _, k := range report.PaginatedKinds {
		if tab == k {
			return true
		}
	}
	return false
}

// handleAdminReports handles GET /admin/reportes?tab=<kind>
func handleAdminReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctl, ok := reportsFor(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	tab := r.URL.Query().Get("tab")
	if tab == "" {
		tab = ctl.ActiveTab()
	}
	if !validReportTab(tab) {
		http.Error(w, "pestaña desconocida", http.StatusBadRequest)
		return
	}
	ctl.SelectTab(r.Context(), tab)
	if err := ctl.Err(); err != nil {
		handleAPIError(w, r, err)
		return
	}

	data := map[string]any{
		"ActiveTab":    tab,
		"Filter":       ctl.Filter(),
		"Dashboard":    ctl.Dashboard(),
		"TopStudents":  ctl.TopStudents(),
		"Trend":        ctl.Trend(),
		"HeatMap":      ctl.HeatMap(),
		"HeatMapDays":  report.HeatMapDays,
		"HeatMapHours": report.HeatMapHours,
		"ByTutor":      ctl.ByTutor(),
		"ByStudent":    ctl.ByStudent(),
		"ByAircraft":   ctl.ByAircraft(),
		"PageNumbers":  ctl.PageNumbers(tab),
	}
	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_reports.html", data)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// handleAdminReportsFilter handles POST /admin/reportes/filtro,
// replacing the shared date range and page size.
func handleAdminReportsFilter(w http.ResponseWriter, r *http.Request) {
	ctl, ok := reportsFor(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	current := ctl.Filter()
	f := reports.Filter{
		DateFrom: r.FormValue("fecha_inicio"),
		DateTo:   r.FormValue("fecha_fin"),
		Search:   current.Search,
		PerPage:  formInt(r, "per_page"),
		OrderBy:  current.OrderBy,
		OrderDir: current.OrderDir,
	}
	ctl.SetFilter(r.Context(), f)
	if err := ctl.Err(); err != nil {
		handleAPIError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/reportes?tab="+ctl.ActiveTab(), http.StatusSeeOther)
}

// handleAdminReportsSearch handles GET /admin/reportes/buscar?q=<text>.
// The reload fires after the debounce quiet period, so the handler only
// acknowledges; the page polls or re-renders on the next request.
func handleAdminReportsSearch(w http.ResponseWriter, r *http.Request) {
	ctl, ok := reportsFor(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	// Detached from the request: the debounced reload outlives it.
	ctl.SetSearch(context.WithoutCancel(r.Context()), r.URL.Query().Get("q"))
	w.WriteHeader(http.StatusAccepted)
}

// handleAdminReportsSort handles POST /admin/reportes/orden?campo=<field>
func handleAdminReportsSort(w http.ResponseWriter, r *http.Request) {
	ctl, ok := reportsFor(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	field := r.URL.Query().Get("campo")
	if field == "" {
		http.Error(w, "campo es requerido", http.StatusBadRequest)
		return
	}
	ctl.ChangeSort(r.Context(), field)
	if err := ctl.Err(); err != nil {
		handleAPIError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/reportes?tab="+ctl.ActiveTab(), http.StatusSeeOther)
}

// handleAdminReportsPage handles GET /admin/reportes/pagina?tab=<kind>&page=<n>
func handleAdminReportsPage(w http.ResponseWriter, r *http.Request) {
	ctl, ok := reportsFor(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	q := r.URL.Query()
	tab := q.Get("tab")
	ctl.SetPage(r.Context(), tab, atoiDefault(q.Get("page"), 1))
	if err := ctl.Err(); err != nil {
		handleAPIError(w, r, err)
		return
	}
	http.Redirect(w, r, "/admin/reportes?tab="+tab, http.StatusSeeOther)
}

// handleAdminReportsExport handles GET /admin/reportes/exportar?tab=<kind>&formato=<pdf|excel>
// by redirecting the browser to the backend's export URL with the
// current date range applied.
func handleAdminReportsExport(w http.ResponseWriter, r *http.Request) {
	ctl, ok := reportsFor(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	q := r.URL.Query()
	tab := q.Get("tab")
	format := q.Get("formato")
	if format != "pdf" && format != "excel" {
		http.Error(w, "formato debe ser pdf o excel", http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, ctl.ExportURL(tab, format), http.StatusSeeOther)
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
