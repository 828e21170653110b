package user

import "flightdesk/internal/domain/principal"

// User is a managed account as exposed by the backend user endpoints.
// Role values are shared with principal.
type User struct {
	ID              int    `json:"id_usuario"`
	FirstName       string `json:"nombre"`
	LastName        string `json:"apellido"`
	Email           string `json:"correo"`
	Phone           string `json:"telefono,omitempty"`
	Role            string `json:"rol"`
	Active          bool   `json:"activo"`
	AssignedTutorID int    `json:"tutor_asignado_id,omitempty"`
	Notes           string `json:"notas,omitempty"`
	AssignedTutor   *Ref   `json:"tutor_asignado,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

// Ref is the abbreviated user shape the backend embeds in related records.
type Ref struct {
	ID        int    `json:"id_usuario"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"correo,omitempty"`
}

// FullName concatenates first and last name.
func (r Ref) FullName() string {
	if r.FirstName == "" {
		return r.LastName
	}
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// Form carries the user create/update payload. Validation tags are checked
// before the request is sent to the backend.
type Form struct {
	FirstName       string `json:"nombre" validate:"required,max=100"`
	LastName        string `json:"apellido" validate:"required,max=100"`
	Email           string `json:"correo" validate:"required,email"`
	Password        string `json:"password,omitempty" validate:"omitempty,min=8"`
	Phone           string `json:"telefono,omitempty" validate:"omitempty,max=30"`
	Role            string `json:"rol" validate:"required,oneof=Administrador Tutor Alumno"`
	AssignedTutorID int    `json:"tutor_asignado_id,omitempty"`
	Notes           string `json:"notas,omitempty" validate:"omitempty,max=1000"`
}

// Stats mirrors the backend's user statistics payload.
type Stats struct {
	Total    int `json:"total"`
	Admins   int `json:"administradores"`
	Tutors   int `json:"tutores"`
	Students int `json:"alumnos"`
	Active   int `json:"activos"`
	Inactive int `json:"inactivos"`
}

// IsStudent reports whether the record holds the student role.
func (u User) IsStudent() bool { return u.Role == principal.RoleStudent }

// IsTutor reports whether the record holds the tutor role.
func (u User) IsTutor() bool { return u.Role == principal.RoleTutor }

// FullName concatenates first and last name.
func (u User) FullName() string {
	return Ref{FirstName: u.FirstName, LastName: u.LastName}.FullName()
}
