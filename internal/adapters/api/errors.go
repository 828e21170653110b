package api

import (
	"errors"
	"fmt"
)

// Kind classifies a backend API failure into a closed taxonomy. Callers
// branch on Kind instead of inspecting raw status codes.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized" // 401: token missing, expired or revoked
	KindForbidden    Kind = "forbidden"    // 403: authenticated but not allowed
	KindNotFound     Kind = "not_found"    // 404
	KindValidation   Kind = "validation"   // 422 (and 400): payload rejected
	KindTransport    Kind = "transport"    // connection, DNS or timeout failure
	KindUnknown      Kind = "unknown"      // anything else, including 5xx
)

// Error is the uniform error returned by every client call.
type Error struct {
	Kind    Kind
	Status  int               // HTTP status, 0 for transport failures
	Message string            // backend-provided message when present
	Fields  map[string]string // per-field validation messages, when present
	Err     error             // underlying error, when any
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("api: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Kind, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the taxonomy kind from err, or KindUnknown for errors that
// did not originate in this package.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsUnauthorized reports whether err is a 401 rejection. The web layer uses
// this to clear the session and bounce to the login page.
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

func kindForStatus(status int) Kind {
	switch {
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status == 400 || status == 422:
		return KindValidation
	default:
		return KindUnknown
	}
}
