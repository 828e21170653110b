package flightlog

import "math"

// Star kinds for rendering a 0-5 average rating.
const (
	StarFull  = "full"
	StarHalf  = "half"
	StarEmpty = "empty"
)

// Maneuver is one entry of the instructor's maneuver catalogue.
type Maneuver struct {
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	Category string `json:"categoria"`
}

// Entry is the per-flight training record (bitácora) filled in by the tutor.
type Entry struct {
	ID                  int      `json:"id_bitacora,omitempty"`
	FlightID            int      `json:"vuelo_id,omitempty"`
	OverallRating       float64  `json:"calificacion_general,omitempty" validate:"omitempty,gte=0,lte=5"`
	TakeoffRating       float64  `json:"calificacion_despegue,omitempty" validate:"omitempty,gte=0,lte=5"`
	FlightRating        float64  `json:"calificacion_vuelo,omitempty" validate:"omitempty,gte=0,lte=5"`
	LandingRating       float64  `json:"calificacion_aterrizaje,omitempty" validate:"omitempty,gte=0,lte=5"`
	CommunicationRating float64  `json:"calificacion_comunicacion,omitempty" validate:"omitempty,gte=0,lte=5"`
	Maneuvers           []string `json:"maniobras_realizadas,omitempty"`
	TechnicalNotes      string   `json:"observaciones_tecnicas,omitempty" validate:"omitempty,max=2000"`
	GeneralNotes        string   `json:"observaciones_generales,omitempty" validate:"omitempty,max=2000"`
	AreasToImprove      string   `json:"areas_mejorar,omitempty" validate:"omitempty,max=2000"`
	Achievements        string   `json:"logros,omitempty" validate:"omitempty,max=2000"`
	Weather             string   `json:"condiciones_climaticas,omitempty"`
	Visibility          string   `json:"visibilidad,omitempty"`
	Wind                string   `json:"viento,omitempty"`
	RealHours           float64  `json:"horas_vuelo_real,omitempty" validate:"gte=0"`
	SimulatorHours      float64  `json:"horas_vuelo_simulador,omitempty" validate:"gte=0"`
	Landings            int      `json:"numero_aterrizajes,omitempty" validate:"gte=0"`
	Takeoffs            int      `json:"numero_despegues,omitempty" validate:"gte=0"`
	HadIncident         bool     `json:"hubo_incidente,omitempty"`
	IncidentDescription string   `json:"descripcion_incidente,omitempty" validate:"omitempty,max=2000"`
	CreatedAt           string   `json:"created_at,omitempty"`
	UpdatedAt           string   `json:"updated_at,omitempty"`
}

// History is the backend's per-student flight-log history payload.
type History struct {
	Entries []Entry      `json:"bitacoras"`
	Stats   HistoryStats `json:"estadisticas"`
}

// HistoryStats aggregates a student's logged flights.
type HistoryStats struct {
	TotalFlights  int      `json:"total_vuelos"`
	AverageRating float64  `json:"promedio_calificacion"`
	TotalHours    float64  `json:"total_horas"`
	TotalLandings int      `json:"total_aterrizajes"`
	TotalTakeoffs int      `json:"total_despegues"`
	AllManeuvers  []string `json:"maniobras_totales"`
}

// Stars expands a 0-5 average rating into five star symbols: floor(rating)
// full stars, a half star when the fraction is at least 0.5, empty for the
// rest. Ratings outside [0,5] are clamped.
func Stars(rating float64) []string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	full := int(math.Floor(rating))
	stars := make([]string, 0, 5)
	for i := 0; i < full; i++ {
		stars = append(stars, StarFull)
	}
	if rating-float64(full) >= 0.5 && len(stars) < 5 {
		stars = append(stars, StarHalf)
	}
	for len(stars) < 5 {
		stars = append(stars, StarEmpty)
	}
	return stars
}

// RatingColor maps an average rating to a traffic-light display bucket.
func RatingColor(rating float64) string {
	switch {
	case rating >= 4.5:
		return "#10b981"
	case rating >= 3.5:
		return "#3b82f6"
	case rating >= 2.5:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}
