package aircraft

import "errors"

// Aircraft status constants (backend wire values).
const (
	StatusActive      = "Activo"
	StatusMaintenance = "Mantenimiento"
)

// Fault severity constants for maintenance reports.
const (
	SeverityLow      = "Baja"
	SeverityMedium   = "Media"
	SeverityHigh     = "Alta"
	SeverityCritical = "Crítica"
)

var ErrInvalidStatus = errors.New("aircraft status must be Activo or Mantenimiento")

// Aircraft is a training aircraft record.
type Aircraft struct {
	ID          int     `json:"id_avioneta"`
	Code        string  `json:"codigo"`
	Model       string  `json:"modelo"`
	FlightHours float64 `json:"horas_vuelo"`
	Status      string  `json:"estado"`
	Notes       string  `json:"observaciones,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// Ref is the abbreviated aircraft shape embedded in flight records.
type Ref struct {
	ID     int    `json:"id_avioneta"`
	Code   string `json:"codigo"`
	Model  string `json:"modelo"`
	Status string `json:"estado,omitempty"`
}

// Label returns the canonical display label used by typeahead selection.
func (r Ref) Label() string {
	if r.Model == "" {
		return r.Code
	}
	return r.Code + " - " + r.Model
}

// Form carries the aircraft create/update payload.
type Form struct {
	Code        string  `json:"codigo" validate:"required,max=20"`
	Model       string  `json:"modelo" validate:"required,max=100"`
	FlightHours float64 `json:"horas_vuelo,omitempty" validate:"gte=0"`
	Status      string  `json:"estado" validate:"required,oneof=Activo Mantenimiento"`
	Notes       string  `json:"observaciones,omitempty" validate:"omitempty,max=1000"`
}

// FaultReport is an aircraft fault report filed by a tutor.
type FaultReport struct {
	ID              int    `json:"id_reporte,omitempty"`
	AircraftID      int    `json:"avioneta_id" validate:"required"`
	ReportedBy      int    `json:"reportado_por,omitempty"`
	FaultType       string `json:"tipo_falla" validate:"required,max=100"`
	Severity        string `json:"severidad" validate:"required,oneof=Baja Media Alta Crítica"`
	Description     string `json:"descripcion" validate:"required,max=2000"`
	Urgent          bool   `json:"requiere_atencion_inmediata"`
	Status          string `json:"estado,omitempty"`
	ResolutionNotes string `json:"notas_resolucion,omitempty"`
	ResolvedAt      string `json:"fecha_resolucion,omitempty"`
	Aircraft        *Ref   `json:"avioneta,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// Stats mirrors the backend's aircraft statistics payload.
type Stats struct {
	Total        int     `json:"total"`
	Active       int     `json:"activas"`
	Maintenance  int     `json:"mantenimiento"`
	TotalHours   float64 `json:"horas_totales"`
	AverageHours float64 `json:"promedio_horas"`
}

// ValidStatus reports whether s is a recognised aircraft status.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusMaintenance
}
