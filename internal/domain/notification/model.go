package notification

// Notification type constants (backend wire values).
const (
	TypeFlightAssigned  = "Vuelo Asignado"
	TypeFlightCancelled = "Vuelo Cancelado"
	TypeFlightModified  = "Vuelo Modificado"
	TypeReminder        = "Recordatorio"
	TypeAlert           = "Alerta"
)

// Notification is an in-app notification addressed to the current user.
type Notification struct {
	ID       int    `json:"id_notificacion"`
	UserID   int    `json:"usuario_id"`
	FlightID int    `json:"vuelo_id,omitempty"`
	Type     string `json:"tipo"`
	Title    string `json:"titulo"`
	Message  string `json:"mensaje"`
	Read     bool   `json:"leida"`
	ReadAt   string `json:"fecha_leida,omitempty"`
	Flight   *Ref   `json:"vuelo,omitempty"`

	CreatedAt string `json:"created_at"`
}

// Ref is the abbreviated flight shape embedded in a notification.
type Ref struct {
	ID        int    `json:"id_vuelo"`
	Date      string `json:"fecha"`
	StartTime string `json:"hora_inicio"`
}

// CountUnread counts the unread notifications in a list.
func CountUnread(list []Notification) int {
	n := 0
	for _, item := range list {
		if !item.Read {
			n++
		}
	}
	return n
}
