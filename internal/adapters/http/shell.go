package web

import (
	"strings"

	"flightdesk/internal/domain/principal"
)

// pageTitles maps a route to the heading shown in the shell header.
var pageTitles = map[string]string{
	"/admin/dashboard":       "Panel de Administración",
	"/admin/usuarios":        "Gestión de Usuarios",
	"/admin/avionetas":       "Gestión de Avionetas",
	"/admin/vuelos":          "Gestión de Vuelos",
	"/admin/reportes":        "Reportes y Análisis",
	"/tutor/mis-vuelos":      "Mi Calendario de Vuelos",
	"/tutor/mis-alumnos":     "Mis Alumnos",
	"/tutor/reportes":        "Mis Reportes",
	"/tutor/reportar-fallas": "Reportar Fallas",
	"/alumno/dashboard":      "Mi Dashboard",
	"/alumno/mis-vuelos":     "Mis Vuelos",
	"/alumno/historial":      "Historial de Vuelos",
	"/alumno/mi-progreso":    "Mi Progreso",
}

var pageSubtitles = map[string]string{
	"/admin/dashboard":       "Bienvenido al sistema de gestión aeronáutica",
	"/admin/usuarios":        "Administra usuarios, asigna roles y controla accesos",
	"/admin/avionetas":       "Administra la flota de avionetas y su mantenimiento",
	"/admin/vuelos":          "Programa y gestiona los vuelos de práctica",
	"/admin/reportes":        "Visualiza estadísticas detalladas y métricas de rendimiento",
	"/tutor/mis-vuelos":      "Gestiona tus vuelos programados y actualiza su estado",
	"/tutor/mis-alumnos":     "Consulta el progreso y desempeño de tus alumnos",
	"/tutor/reportes":        "Visualiza tus estadísticas y rendimiento",
	"/tutor/reportar-fallas": "Reporta problemas técnicos de las avionetas",
	"/alumno/dashboard":      "Resumen de tu actividad y próximos vuelos",
	"/alumno/mis-vuelos":     "Consulta tu horario semanal de vuelos",
	"/alumno/historial":      "Revisa tus vuelos completados y bitácoras",
	"/alumno/mi-progreso":    "Visualiza tu evolución y estadísticas",
}

// pageTitle resolves the shell heading for a path. Dynamic routes are
// matched by prefix; unknown paths fall back to a per-role default.
func pageTitle(path, role string) string {
	if strings.HasPrefix(path, "/tutor/alumno/") {
		return "Progreso del Alumno"
	}
	if t, ok := pageTitles[path]; ok {
		return t
	}
	switch role {
	case principal.RoleTutor:
		return "Panel de Tutor"
	case principal.RoleStudent:
		return "Panel de Alumno"
	}
	return "Administración"
}

func pageSubtitle(path string) string {
	if strings.HasPrefix(path, "/tutor/alumno/") {
		return "Detalle del desempeño y estadísticas del alumno"
	}
	return pageSubtitles[path]
}

// roleHome is where a freshly authenticated user lands when no return
// URL was requested.
func roleHome(role string) string {
	switch role {
	case principal.RoleTutor:
		return "/tutor/mis-vuelos"
	case principal.RoleStudent:
		return "/alumno/dashboard"
	}
	return "/admin/dashboard"
}
