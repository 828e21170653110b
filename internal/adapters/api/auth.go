package api

import (
	"context"

	"flightdesk/internal/domain/principal"
)

// LoginResponse is the backend's successful authentication payload.
type LoginResponse struct {
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type"`
	Principal   principal.Principal `json:"usuario"`
}

// Login exchanges credentials for a bearer token. Failure kinds:
// KindValidation for bad credentials (422), KindForbidden for an inactive
// account (403), KindTransport when the backend is unreachable.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	body := map[string]string{"correo": email, "password": password}
	var resp LoginResponse
	if err := c.post(ctx, "/login", body, &resp); err != nil {
		return LoginResponse{}, err
	}
	return resp, nil
}

// Logout invalidates the bearer token server-side. Callers treat failures as
// best-effort; the local session is cleared regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/logout", struct{}{}, nil)
}

// Me returns the principal behind the current token.
func (c *Client) Me(ctx context.Context) (principal.Principal, error) {
	var resp struct {
		Principal principal.Principal `json:"usuario"`
	}
	if err := c.get(ctx, "/me", nil, &resp); err != nil {
		return principal.Principal{}, err
	}
	return resp.Principal, nil
}
