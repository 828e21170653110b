package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestStudentRoutesAreAlumnoScoped pins the student wrappers to the
// alumno paths; a student bearer is forbidden on the tutor ones.
func TestStudentRoutesAreAlumnoScoped(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/alumno/historial-vuelos":
			w.Write([]byte(`[{"id_vuelo": 1, "estado": "Completado"}]`))
		case "/alumno/mi-progreso":
			w.Write([]byte(`{
				"alumno": {"id_usuario": 7, "nombre": "Alba"},
				"estadisticas": {"total_vuelos": 8, "promedio_calificacion_general": 4.2},
				"maniobras_dominadas": ["Despegue normal"]
			}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	c := New(srv.URL)

	res, err := c.StudentFlightHistory(context.Background(), FlightFilter{Status: "Completado"})
	if err != nil {
		t.Fatalf("StudentFlightHistory: %v", err)
	}
	if len(res.Items) != 1 {
		t.Errorf("len(Items) = %d, want 1", len(res.Items))
	}

	p, err := c.MyProgress(context.Background())
	if err != nil {
		t.Fatalf("MyProgress: %v", err)
	}
	if p.Stats.AverageOverall != 4.2 {
		t.Errorf("AverageOverall = %v, want 4.2", p.Stats.AverageOverall)
	}
	if len(p.MasteredManeuvers) != 1 {
		t.Errorf("MasteredManeuvers = %v, want one entry", p.MasteredManeuvers)
	}

	want := []string{"/alumno/historial-vuelos", "/alumno/mi-progreso"}
	for i, w := range want {
		if i >= len(paths) || paths[i] != w {
			t.Fatalf("paths = %v, want %v", paths, want)
		}
	}
}
