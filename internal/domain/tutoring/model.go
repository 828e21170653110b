package tutoring

import (
	"sort"

	"flightdesk/internal/domain/flight"
	"flightdesk/internal/domain/flightlog"
)

// StudentOverview is one row of a tutor's student roster with the
// backend's per-student summary stats.
type StudentOverview struct {
	ID        int          `json:"id_usuario"`
	FirstName string       `json:"nombre"`
	LastName  string       `json:"apellido"`
	Email     string       `json:"correo"`
	Phone     string       `json:"telefono,omitempty"`
	Stats     StudentStats `json:"estadisticas"`
}

// StudentStats summarizes a student's flight activity for the roster view.
type StudentStats struct {
	TotalFlights     int         `json:"total_vuelos"`
	CompletedFlights int         `json:"vuelos_completados"`
	ScheduledFlights int         `json:"vuelos_programados"`
	TotalHours       float64     `json:"horas_totales"`
	AverageRating    float64     `json:"promedio_calificacion"`
	LastFlight       *LastFlight `json:"ultimo_vuelo,omitempty"`
	NextFlight       *NextFlight `json:"proximo_vuelo,omitempty"`
}

// LastFlight is the most recent flight of a student.
type LastFlight struct {
	Date   string `json:"fecha"`
	Status string `json:"estado"`
}

// NextFlight is a student's next scheduled flight.
type NextFlight struct {
	FlightID  int    `json:"id_vuelo"`
	Date      string `json:"fecha"`
	StartTime string `json:"hora_inicio"`
	Aircraft  string `json:"avioneta,omitempty"`
}

// Progress is the full per-student progress payload shown on the
// tutor's student detail page.
type Progress struct {
	Student struct {
		ID        int    `json:"id_usuario"`
		FirstName string `json:"nombre"`
		LastName  string `json:"apellido"`
		Email     string `json:"correo"`
	} `json:"alumno"`
	Stats             ProgressStats     `json:"estadisticas"`
	MasteredManeuvers []string          `json:"maniobras_dominadas"`
	RatingProgression []RatingPoint     `json:"progresion_calificaciones"`
	RecentLogs        []flightlog.Entry `json:"ultimas_bitacoras"`
	UpcomingFlights   []flight.Flight   `json:"proximos_vuelos"`
}

// ProgressStats breaks a student's averages down per skill.
type ProgressStats struct {
	TotalFlights         int     `json:"total_vuelos"`
	CompletedFlights     int     `json:"vuelos_completados"`
	ScheduledFlights     int     `json:"vuelos_programados"`
	TotalHours           float64 `json:"horas_totales"`
	AverageOverall       float64 `json:"promedio_calificacion_general"`
	AverageTakeoff       float64 `json:"promedio_despegue"`
	AverageFlight        float64 `json:"promedio_vuelo"`
	AverageLanding       float64 `json:"promedio_aterrizaje"`
	AverageCommunication float64 `json:"promedio_comunicacion"`
	TotalTakeoffs        int     `json:"total_despegues"`
	TotalLandings        int     `json:"total_aterrizajes"`
}

// RatingPoint is one sample of a student's rating over time.
type RatingPoint struct {
	Date   string  `json:"fecha"`
	Rating float64 `json:"calificacion"`
}

// RankedStudent is one row of the best-students ranking on the tutor
// report page.
type RankedStudent struct {
	Name          string
	AverageRating float64
	TotalHours    float64
	Completed     int
}

// BestStudents ranks a roster by average rating, highest first, skipping
// students with no ratings yet, and keeps the top n. Ties keep roster
// order.
func BestStudents(students []StudentOverview, n int) []RankedStudent {
	ranked := make([]RankedStudent, 0, len(students))
	for _, s := range students {
		if s.Stats.AverageRating <= 0 {
			continue
		}
		ranked = append(ranked, RankedStudent{
			Name:          s.FirstName + " " + s.LastName,
			AverageRating: s.Stats.AverageRating,
			TotalHours:    s.Stats.TotalHours,
			Completed:     s.Stats.CompletedFlights,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageRating > ranked[j].AverageRating
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Availability is one tutor availability window.
type Availability struct {
	ID        int    `json:"id_disponibilidad,omitempty"`
	TutorID   int    `json:"tutor_id"`
	Date      string `json:"fecha" validate:"required"`
	StartTime string `json:"hora_inicio" validate:"required"`
	EndTime   string `json:"hora_fin" validate:"required"`
	Available bool   `json:"disponible"`
	Notes     string `json:"notas,omitempty" validate:"omitempty,max=500"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
