package principal

import "testing"

// TestValidate_ValidPrincipal verifies a populated principal passes validation.
func TestValidate_ValidPrincipal(t *testing.T) {
	p := Principal{ID: 1, FirstName: "Ana", LastName: "Reyes", Email: "ana@vuelo.bo", Role: RoleTutor}
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid principal, got %v", err)
	}
}

// TestValidate_EmptyEmail verifies validation fails on a blank email.
func TestValidate_EmptyEmail(t *testing.T) {
	p := Principal{ID: 1, FirstName: "Ana", LastName: "Reyes", Email: "  ", Role: RoleTutor}
	if err := p.Validate(); err != ErrEmptyEmail {
		t.Errorf("expected ErrEmptyEmail, got %v", err)
	}
}

// TestValidate_UnknownRole verifies validation fails on a role outside the closed set.
func TestValidate_UnknownRole(t *testing.T) {
	p := Principal{ID: 1, Email: "ana@vuelo.bo", Role: "Piloto"}
	if err := p.Validate(); err != ErrInvalidRole {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

// TestHasRole verifies role membership checks.
func TestHasRole(t *testing.T) {
	p := Principal{Role: RoleAdmin}
	if !p.HasRole(RoleAdmin) {
		t.Error("expected HasRole(Administrador) to be true")
	}
	if !p.HasRole(RoleTutor, RoleAdmin) {
		t.Error("expected HasRole with multiple roles to match")
	}
	if p.HasRole(RoleStudent) {
		t.Error("expected HasRole(Alumno) to be false for admin")
	}
}

// TestDisplayName verifies fallback when nombre_completo is absent.
func TestDisplayName(t *testing.T) {
	p := Principal{FirstName: "Ana", LastName: "Reyes"}
	if got := p.DisplayName(); got != "Ana Reyes" {
		t.Errorf("expected 'Ana Reyes', got %q", got)
	}
	p.FullName = "Ana María Reyes"
	if got := p.DisplayName(); got != "Ana María Reyes" {
		t.Errorf("expected wire full name to win, got %q", got)
	}
}

// TestInitials verifies initials are uppercased and handle missing parts.
func TestInitials(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"ana", "reyes", "AR"},
		{"Ana", "", "A"},
		{"", "", ""},
	}
	for _, c := range cases {
		p := Principal{FirstName: c.first, LastName: c.last}
		if got := p.Initials(); got != c.want {
			t.Errorf("Initials(%q, %q) = %q, want %q", c.first, c.last, got, c.want)
		}
	}
}
