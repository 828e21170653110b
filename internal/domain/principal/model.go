package principal

import (
	"errors"
	"strings"
)

// Role constants. Wire values are the backend's Spanish role names.
const (
	RoleAdmin   = "Administrador"
	RoleTutor   = "Tutor"
	RoleStudent = "Alumno"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleTutor, RoleStudent}

// Domain errors
var (
	ErrEmptyEmail  = errors.New("email cannot be empty")
	ErrInvalidRole = errors.New("role must be one of: Administrador, Tutor, Alumno")
)

// Principal is the authenticated identity of the current user, as returned
// by the backend. Field tags match the backend's wire names.
type Principal struct {
	ID        int    `json:"id_usuario"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"correo"`
	Phone     string `json:"telefono,omitempty"`
	Role      string `json:"rol"`
	FullName  string `json:"nombre_completo,omitempty"`
}

// Validate checks that a restored or freshly decoded Principal is usable.
// PRE: Principal struct is populated
// POST: Returns nil if valid, error otherwise
func (p Principal) Validate() error {
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmptyEmail
	}
	if !isValidRole(p.Role) {
		return ErrInvalidRole
	}
	return nil
}

// HasRole reports whether the principal's role is one of the given roles.
func (p Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// DisplayName returns the full name, falling back to first+last when the
// backend did not send nombre_completo.
func (p Principal) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Initials returns the uppercased first letters of the first and last name.
func (p Principal) Initials() string {
	var b strings.Builder
	if p.FirstName != "" {
		b.WriteString(strings.ToUpper(p.FirstName[:1]))
	}
	if p.LastName != "" {
		b.WriteString(strings.ToUpper(p.LastName[:1]))
	}
	return b.String()
}

func isValidRole(role string) bool {
	for _, r := range ValidRoles {
		if role == r {
			return true
		}
	}
	return false
}
