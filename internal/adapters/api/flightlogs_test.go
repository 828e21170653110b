package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestStudentLogHistory verifies the tutor-scoped logbook path and the
// stats decoding.
func TestStudentLogHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tutor/bitacora/alumno/7" {
			t.Errorf("path = %s, want /tutor/bitacora/alumno/7", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"bitacoras": [{"id_bitacora": 1, "calificacion_general": 4.5}],
			"estadisticas": {"total_vuelos": 3, "promedio_calificacion": 4.1, "maniobras_totales": ["Despegue normal"]}
		}`))
	}))
	defer srv.Close()

	h, err := New(srv.URL).StudentLogHistory(context.Background(), 7)
	if err != nil {
		t.Fatalf("StudentLogHistory: %v", err)
	}
	if len(h.Entries) != 1 || h.Entries[0].OverallRating != 4.5 {
		t.Errorf("Entries = %+v, want one entry rated 4.5", h.Entries)
	}
	if h.Stats.AverageRating != 4.1 || len(h.Stats.AllManeuvers) != 1 {
		t.Errorf("Stats = %+v, want average 4.1 with one maneuver", h.Stats)
	}
}
