package report

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Report kinds. The first three are paginated tabs; the rest are plain lists
// or matrices refreshed alongside the general tab.
const (
	KindByTutor     = "tutores"
	KindByStudent   = "alumnos"
	KindByAircraft  = "avionetas"
	KindHeatMap     = "heatmap"
	KindTopStudents = "top-alumnos"
	KindTrend       = "tendencia"
)

// PaginatedKinds lists the kinds driven through the pagination controller.
var PaginatedKinds = []string{KindByTutor, KindByStudent, KindByAircraft}

// Sort directions.
const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// Number is a float64 that tolerates the backend's loose numeric encoding:
// JSON numbers, numeric strings, empty strings and null all decode, with
// absent or falsy values coerced to zero. Coercion is idempotent.
type Number float64

// UnmarshalJSON implements the coercion rule.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// MarshalJSON always emits a plain JSON number.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// Float returns the coerced value.
func (n Number) Float() float64 { return float64(n) }

// personRef is the abbreviated user shape embedded in report rows.
type personRef struct {
	ID        int    `json:"id_usuario"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
}

// FullName concatenates first and last name.
func (p personRef) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}

// ByTutorRow is one aggregate row of the flights-per-tutor report.
type ByTutorRow struct {
	TutorID      int       `json:"tutor_id"`
	TotalFlights int       `json:"total_vuelos"`
	TotalHours   Number    `json:"total_horas"`
	AverageHours Number    `json:"promedio_horas"`
	Tutor        personRef `json:"tutor"`
}

// TutorName returns the row's display name.
func (r ByTutorRow) TutorName() string { return r.Tutor.FullName() }

// ByStudentRow is one aggregate row of the flights-per-student report.
type ByStudentRow struct {
	StudentID    int       `json:"alumno_id"`
	TotalFlights int       `json:"total_vuelos"`
	TotalHours   Number    `json:"total_horas"`
	AverageHours Number    `json:"promedio_horas"`
	Student      personRef `json:"alumno"`
}

// StudentName returns the row's display name.
func (r ByStudentRow) StudentName() string { return r.Student.FullName() }

// ByAircraftRow is one aggregate row of the aircraft usage report.
type ByAircraftRow struct {
	AircraftID   int    `json:"avioneta_id"`
	TotalFlights int    `json:"total_vuelos"`
	TotalHours   Number `json:"total_horas"`
	AverageHours Number `json:"promedio_horas"`
	UsagePercent Number `json:"porcentaje_uso"`
	Aircraft     struct {
		ID    int    `json:"id_avioneta"`
		Code  string `json:"codigo"`
		Model string `json:"modelo"`
	} `json:"avioneta"`
}

// TopStudentRow is one entry of the top-students widget.
type TopStudentRow struct {
	ID           int    `json:"id_usuario"`
	FirstName    string `json:"nombre"`
	LastName     string `json:"apellido"`
	TotalHours   Number `json:"total_horas"`
	TotalFlights int    `json:"total_vuelos"`
}

// TrendPoint is one day of the flight trend widget.
type TrendPoint struct {
	Date  string `json:"fecha"`
	Total int    `json:"total"`
}

// MaxTrend returns the largest total in the series, or 1 for an empty series
// so bar scaling never divides by zero.
func MaxTrend(points []TrendPoint) int {
	max := 0
	for _, p := range points {
		if p.Total > max {
			max = p.Total
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

// HeatMap is the day-of-week by hour flight count matrix.
type HeatMap map[string]map[string]int

// Value returns the count for a day/hour cell, defaulting to zero for any
// missing day or hour.
func (m HeatMap) Value(day, hour string) int {
	if m == nil {
		return 0
	}
	return m[day][hour]
}

// HeatMapDays and HeatMapHours define the rendered matrix axes.
var (
	HeatMapDays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

	HeatMapHours = []string{
		"06:00", "07:00", "08:00", "09:00", "10:00", "11:00",
		"12:00", "13:00", "14:00", "15:00", "16:00", "17:00",
		"18:00", "19:00", "20:00",
	}
)

// Dashboard mirrors the backend's aggregate dashboard payload.
type Dashboard struct {
	Users struct {
		Total    int `json:"total"`
		Students int `json:"alumnos"`
		Tutors   int `json:"tutores"`
		Active   int `json:"activos"`
	} `json:"usuarios"`
	Aircraft struct {
		Total       int    `json:"total"`
		Active      int    `json:"activas"`
		Maintenance int    `json:"mantenimiento"`
		TotalHours  Number `json:"horas_totales"`
	} `json:"avionetas"`
	Flights struct {
		Total      int    `json:"total"`
		Scheduled  int    `json:"programados"`
		Completed  int    `json:"completados"`
		Cancelled  int    `json:"cancelados"`
		HoursFlown Number `json:"horas_voladas"`
		Today      int    `json:"hoy"`
		ThisWeek   int    `json:"esta_semana"`
	} `json:"vuelos"`
}
