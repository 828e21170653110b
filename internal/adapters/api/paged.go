package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ListResult is the tagged union of the backend's two list response shapes:
// a bare JSON array, or a paginator envelope {data, current_page, last_page,
// total}. Shape detection happens once, here; callers only ever see the
// normalized form.
type ListResult[T any] struct {
	Items       []T
	Paginated   bool
	CurrentPage int
	LastPage    int
	Total       int
}

// envelope mirrors the backend paginator shape.
type envelope[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// decodeList detects which shape the backend returned and normalizes it.
// A plain list reports Total = len(items) with a single page.
func decodeList[T any](data []byte) (ListResult[T], error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ListResult[T]{CurrentPage: 1, LastPage: 1}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return ListResult[T]{}, fmt.Errorf("decoding list: %w", err)
		}
		return ListResult[T]{
			Items:       items,
			CurrentPage: 1,
			LastPage:    1,
			Total:       len(items),
		}, nil
	}

	var env envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return ListResult[T]{}, fmt.Errorf("decoding paginated envelope: %w", err)
	}
	res := ListResult[T]{
		Items:       env.Data,
		Paginated:   true,
		CurrentPage: env.CurrentPage,
		LastPage:    env.LastPage,
		Total:       env.Total,
	}
	if res.CurrentPage < 1 {
		res.CurrentPage = 1
	}
	if res.LastPage < 1 {
		res.LastPage = 1
	}
	return res, nil
}

// getList performs a GET that may return either list shape.
func getList[T any](ctx context.Context, c *Client, path string, query url.Values) (ListResult[T], error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, query, &raw); err != nil {
		return ListResult[T]{}, err
	}
	return decodeList[T](raw)
}
