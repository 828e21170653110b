// Package api is the typed client for the flight-school backend REST API.
// Wire names stay in the backend's Spanish vocabulary for compatibility;
// everything decodes into the domain packages' structs.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every backend call so a stalled request cannot leave
// a page loading forever.
const DefaultTimeout = 15 * time.Second

// Client talks to the backend API. A zero token means unauthenticated;
// WithToken derives a per-request authenticated view.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	latency *LatencyRecorder
}

// New creates a Client for the given base URL (e.g. "http://127.0.0.1:8000/api").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		latency: NewLatencyRecorder(DefaultLatencyRing),
	}
}

// WithToken returns a copy of the client that sends the given bearer token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Latency returns the recorder shared by this client and its WithToken copies.
func (c *Client) Latency() *LatencyRecorder { return c.latency }

// do performs one request and decodes a 2xx JSON body into out (out may be
// nil). Non-2xx responses and transport failures become *Error values.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, Err: fmt.Errorf("encoding request body: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Kind: KindUnknown, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.observe(method+" "+path, start, resp, err)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindUnknown, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// observe records the call in the latency ring and warns on slow calls.
func (c *Client) observe(route string, start time.Time, resp *http.Response, err error) {
	if c.latency == nil {
		return
	}
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	status := 0
	if err == nil && resp != nil {
		status = resp.StatusCode
	}
	c.latency.record(callSample{Route: route, Status: status, DurationMs: durationMs, At: start})
	if durationMs >= SlowCallMs {
		slog.Warn("slow_backend_call", "route", route, "status", status, "duration_ms", durationMs)
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// errorFromResponse maps a non-2xx body to the error taxonomy. The backend
// sends {"message": ...} and, on validation failures, {"errors": {field: [msgs]}}.
func errorFromResponse(status int, data []byte) *Error {
	apiErr := &Error{Kind: kindForStatus(status), Status: status}

	var payload struct {
		Message string              `json:"message"`
		Error   string              `json:"error"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		apiErr.Message = payload.Message
		if apiErr.Message == "" {
			apiErr.Message = payload.Error
		}
		if len(payload.Errors) > 0 {
			apiErr.Fields = make(map[string]string, len(payload.Errors))
			for field, msgs := range payload.Errors {
				if len(msgs) > 0 {
					apiErr.Fields[field] = msgs[0]
				}
			}
		}
	}
	return apiErr
}

// setIf adds a query parameter when the value is non-empty.
func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// setIfInt adds a query parameter when the value is non-zero.
func setIfInt(q url.Values, key string, value int) {
	if value != 0 {
		q.Set(key, fmt.Sprintf("%d", value))
	}
}
