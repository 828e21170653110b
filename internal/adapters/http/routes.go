package web

import (
	"net/http"

	"flightdesk/internal/adapters/http/middleware"
	"flightdesk/internal/domain/principal"
)

// guard wraps a handler with a role check. Anonymous users bounce to the
// login form with a return URL; authenticated users with the wrong role
// land on /unauthorized.
func guard(h http.HandlerFunc, roles ...string) http.Handler {
	return middleware.RequireRole(roles...)(h)
}

// authed requires any authenticated session.
func authed(h http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(h)
}

func registerRoutes(mux *http.ServeMux) {
	admin := principal.RoleAdmin
	tutor := principal.RoleTutor
	student := principal.RoleStudent

	mux.HandleFunc("/", handleRoot)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)
	mux.HandleFunc("/unauthorized", handleUnauthorized)

	// Admin area
	mux.Handle("/admin/dashboard", guard(handleAdminDashboard, admin))
	mux.Handle("/admin/usuarios", guard(handleAdminUsers, admin))
	mux.Handle("POST /admin/usuarios/{id}/editar", guard(handleAdminUserUpdate, admin))
	mux.Handle("POST /admin/usuarios/{id}/eliminar", guard(handleAdminUserDelete, admin))
	mux.Handle("POST /admin/usuarios/{id}/activar", guard(handleAdminUserActivate, admin))
	mux.Handle("/admin/avionetas", guard(handleAdminAircraft, admin))
	mux.Handle("POST /admin/avionetas/{id}/editar", guard(handleAdminAircraftUpdate, admin))
	mux.Handle("POST /admin/avionetas/{id}/eliminar", guard(handleAdminAircraftDelete, admin))
	mux.Handle("POST /admin/avionetas/{id}/estado", guard(handleAdminAircraftStatus, admin))
	mux.Handle("/admin/vuelos", guard(handleAdminFlights, admin))
	mux.Handle("POST /admin/vuelos/{id}/editar", guard(handleAdminFlightUpdate, admin))
	mux.Handle("POST /admin/vuelos/{id}/eliminar", guard(handleAdminFlightDelete, admin))
	mux.Handle("POST /admin/vuelos/{id}/estado", guard(handleAdminFlightStatus, admin))
	mux.Handle("/admin/reportes", guard(handleAdminReports, admin))
	mux.Handle("POST /admin/reportes/filtro", guard(handleAdminReportsFilter, admin))
	mux.Handle("/admin/reportes/buscar", guard(handleAdminReportsSearch, admin))
	mux.Handle("POST /admin/reportes/orden", guard(handleAdminReportsSort, admin))
	mux.Handle("/admin/reportes/pagina", guard(handleAdminReportsPage, admin))
	mux.Handle("/admin/reportes/exportar", guard(handleAdminReportsExport, admin))

	// Tutor area
	mux.Handle("/tutor/mis-vuelos", guard(handleTutorFlights, tutor))
	mux.Handle("POST /tutor/vuelo/{id}/estado", guard(handleTutorFlightStatus, tutor))
	mux.Handle("/tutor/bitacora/vuelo/{id}", guard(handleTutorFlightLog, tutor))
	mux.Handle("/tutor/mis-alumnos", guard(handleTutorStudents, tutor))
	mux.Handle("/tutor/alumno/{id}/progreso", guard(handleTutorStudentProgress, tutor))
	mux.Handle("/tutor/reportes", guard(handleTutorReports, tutor))
	mux.Handle("/tutor/reportar-fallas", guard(handleTutorFaults, tutor))
	mux.Handle("/tutor/disponibilidad", guard(handleTutorAvailability, tutor))
	mux.Handle("/api/tutor/avionetas-disponibles", guard(handleTutorAvailableAircraft, tutor))

	// Student area
	mux.Handle("/alumno/dashboard", guard(handleStudentDashboard, student))
	mux.Handle("/alumno/mis-vuelos", guard(handleStudentFlights, student))
	mux.Handle("/alumno/historial", guard(handleStudentHistory, student))
	mux.Handle("/alumno/mi-progreso", guard(handleStudentProgress, student))

	// Shared, any authenticated role
	mux.Handle("/notificaciones", authed(handleNotifications))
	mux.Handle("GET /api/notificaciones/count", authed(handleNotificationCount))
	mux.Handle("POST /notificaciones/{id}/marcar-leida", authed(handleNotificationMarkRead))
	mux.Handle("POST /notificaciones/marcar-todas-leidas", authed(handleNotificationMarkAllRead))
	mux.Handle("POST /notificaciones/{id}/eliminar", authed(handleNotificationDelete))

	// Typeahead sources for the admin flight form
	mux.Handle("GET /api/buscar-usuarios", guard(handleUserSearch, admin))
	mux.Handle("GET /api/buscar-avionetas", guard(handleAircraftSearch, admin))

	// Backend latency diagnostics
	mux.Handle("GET /api/admin/rendimiento", guard(handleAdminLatency, admin))
}
