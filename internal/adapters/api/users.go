package api

import (
	"context"
	"fmt"
	"net/url"

	"flightdesk/internal/domain/user"
)

// UserFilter narrows the user list endpoint.
type UserFilter struct {
	Role   string
	Active *bool
	Search string
}

func (f UserFilter) query() url.Values {
	q := url.Values{}
	setIf(q, "rol", f.Role)
	if f.Active != nil {
		q.Set("activo", fmt.Sprintf("%t", *f.Active))
	}
	setIf(q, "search", f.Search)
	return q
}

// Users lists user accounts matching the filter.
func (c *Client) Users(ctx context.Context, filter UserFilter) ([]user.User, error) {
	var list []user.User
	if err := c.get(ctx, "/usuarios", filter.query(), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// User fetches one user by id.
func (c *Client) User(ctx context.Context, id int) (user.User, error) {
	var u user.User
	if err := c.get(ctx, fmt.Sprintf("/usuarios/%d", id), nil, &u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Tutors lists all tutor accounts.
func (c *Client) Tutors(ctx context.Context) ([]user.User, error) {
	var list []user.User
	if err := c.get(ctx, "/usuarios-tutores", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateUser creates a user account.
func (c *Client) CreateUser(ctx context.Context, form user.Form) (user.User, error) {
	var resp struct {
		User user.User `json:"usuario"`
	}
	if err := c.post(ctx, "/usuarios", form, &resp); err != nil {
		return user.User{}, err
	}
	return resp.User, nil
}

// UpdateUser updates a user account.
func (c *Client) UpdateUser(ctx context.Context, id int, form user.Form) (user.User, error) {
	var resp struct {
		User user.User `json:"usuario"`
	}
	if err := c.put(ctx, fmt.Sprintf("/usuarios/%d", id), form, &resp); err != nil {
		return user.User{}, err
	}
	return resp.User, nil
}

// DeleteUser deactivates (soft-deletes) a user account.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/usuarios/%d", id))
}

// ActivateUser re-activates a deactivated account.
func (c *Client) ActivateUser(ctx context.Context, id int) error {
	return c.post(ctx, fmt.Sprintf("/usuarios/%d/activate", id), struct{}{}, nil)
}

// UserStats returns aggregate user counters.
func (c *Client) UserStats(ctx context.Context) (user.Stats, error) {
	var stats user.Stats
	if err := c.get(ctx, "/usuarios-estadisticas", nil, &stats); err != nil {
		return user.Stats{}, err
	}
	return stats, nil
}

// SearchUsers is the typeahead endpoint; role optionally restricts matches
// (e.g. "Alumno" or "Tutor").
func (c *Client) SearchUsers(ctx context.Context, search, role string) ([]user.Ref, error) {
	q := url.Values{}
	setIf(q, "search", search)
	setIf(q, "rol", role)
	var list []user.Ref
	if err := c.get(ctx, "/buscar-usuarios", q, &list); err != nil {
		return nil, err
	}
	return list, nil
}
