package flight

import (
	"fmt"
	"sort"
	"time"

	"flightdesk/internal/domain/aircraft"
	"flightdesk/internal/domain/user"
)

// Flight status constants (backend wire values).
const (
	StatusScheduled  = "Programado"
	StatusInProgress = "En Curso"
	StatusCompleted  = "Completado"
	StatusCancelled  = "Cancelado"
)

// ValidStatuses contains all valid flight status values.
var ValidStatuses = []string{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

// DateLayout is the backend's date wire format.
const DateLayout = "2006-01-02"

// Flight is a scheduled or flown practice flight.
type Flight struct {
	ID         int           `json:"id_vuelo"`
	StudentID  int           `json:"alumno_id"`
	TutorID    int           `json:"tutor_id"`
	AircraftID int           `json:"avioneta_id"`
	Date       string        `json:"fecha"`
	StartTime  string        `json:"hora_inicio"`
	EndTime    string        `json:"hora_fin,omitempty"`
	Status     string        `json:"estado"`
	Notes      string        `json:"observaciones,omitempty"`
	HoursFlown float64       `json:"horas_voladas,omitempty"`
	Student    *user.Ref     `json:"alumno,omitempty"`
	Tutor      *user.Ref     `json:"tutor,omitempty"`
	Aircraft   *aircraft.Ref `json:"avioneta,omitempty"`
	CreatedAt  string        `json:"created_at,omitempty"`
	UpdatedAt  string        `json:"updated_at,omitempty"`
}

// Form carries the flight create/update payload.
type Form struct {
	StudentID  int    `json:"alumno_id" validate:"required"`
	TutorID    int    `json:"tutor_id" validate:"required"`
	AircraftID int    `json:"avioneta_id" validate:"required"`
	Date       string `json:"fecha" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"hora_inicio" validate:"required"`
	EndTime    string `json:"hora_fin,omitempty"`
	Status     string `json:"estado,omitempty" validate:"omitempty,oneof=Programado 'En Curso' Completado Cancelado"`
	Notes      string `json:"observaciones,omitempty" validate:"omitempty,max=2000"`
}

// StatusUpdate carries the tutor's flight status transition payload.
type StatusUpdate struct {
	Status  string `json:"estado" validate:"required,oneof=Programado 'En Curso' Completado Cancelado"`
	Notes   string `json:"observaciones,omitempty"`
	EndTime string `json:"hora_fin,omitempty"`
}

// Stats mirrors the backend's flight statistics payload.
type Stats struct {
	Total      int     `json:"total"`
	Scheduled  int     `json:"programados"`
	InProgress int     `json:"en_curso"`
	Completed  int     `json:"completados"`
	Cancelled  int     `json:"cancelados"`
	TotalHours float64 `json:"horas_totales"`
}

// ValidStatus reports whether s is a recognised flight status.
func ValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// parseDate parses a wire date, returning the zero time on malformed input.
func parseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// QuickStats are the shell widgets shown above a flight list.
type QuickStats struct {
	Today    int
	ThisWeek int
	Pending  int
}

// ComputeQuickStats counts today's flights, this week's flights (Sunday-based
// week containing now) and pending scheduled flights.
func ComputeQuickStats(flights []Flight, now time.Time) QuickStats {
	// Flight dates parse as UTC midnight, so the comparison anchors use
	// now's calendar date in UTC regardless of the server zone.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 6)

	var qs QuickStats
	for _, f := range flights {
		d := parseDate(f.Date)
		if d.IsZero() {
			continue
		}
		if d.Equal(today) {
			qs.Today++
		}
		if !d.Before(weekStart) && !d.After(weekEnd) {
			qs.ThisWeek++
		}
		if f.Status == StatusScheduled {
			qs.Pending++
		}
	}
	return qs
}

// MonthCount is the number of flights flown in one calendar month.
type MonthCount struct {
	Year  int
	Month time.Month
	Count int
}

// Label formats the bucket as "2026-08" for chart axes.
func (m MonthCount) Label() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// GroupByMonth buckets flights by calendar month and returns the most recent
// months first, capped at limit entries. Flights with malformed dates are
// skipped.
func GroupByMonth(flights []Flight, limit int) []MonthCount {
	buckets := make(map[string]*MonthCount)
	for _, f := range flights {
		d := parseDate(f.Date)
		if d.IsZero() {
			continue
		}
		key := d.Format("2006-01")
		if b, ok := buckets[key]; ok {
			b.Count++
		} else {
			buckets[key] = &MonthCount{Year: d.Year(), Month: d.Month(), Count: 1}
		}
	}
	out := make([]MonthCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CompletedHours sums horas_voladas across completed flights.
func CompletedHours(flights []Flight) float64 {
	var sum float64
	for _, f := range flights {
		if f.Status == StatusCompleted {
			sum += f.HoursFlown
		}
	}
	return sum
}

// CountByStatus counts flights in the given status.
func CountByStatus(flights []Flight, status string) int {
	n := 0
	for _, f := range flights {
		if f.Status == status {
			n++
		}
	}
	return n
}

// ProgressPercent returns completed/total as a 0-100 percentage.
func ProgressPercent(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
