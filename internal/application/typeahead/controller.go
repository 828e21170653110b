// Package typeahead implements the debounced, switch-latest autocomplete
// used by the flight form's student, tutor and aircraft pickers.
package typeahead

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MinQueryLen is the shortest text that triggers a remote search. Anything
// shorter clears the suggestions without a backend call.
const MinQueryLen = 2

// DefaultDelay is the quiet period before a search fires.
const DefaultDelay = 300 * time.Millisecond

// Option is one selectable suggestion.
type Option struct {
	ID    int    `json:"id"`
	Label string `json:"etiqueta"`
}

// SearchFunc performs the remote lookup for a query.
type SearchFunc func(ctx context.Context, text string) ([]Option, error)

// Controller drives one autocomplete field. Results apply latest-wins: a
// response belonging to a superseded query is discarded even when it
// arrives after the newer response.
type Controller struct {
	search   SearchFunc
	debounce *Debouncer

	mu         sync.Mutex
	generation uint64
	text       string
	options    []Option
	searching  bool
	selected   *Option
}

// NewController creates a controller around the given search function.
// delay <= 0 falls back to DefaultDelay.
func NewController(search SearchFunc, delay time.Duration) *Controller {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Controller{
		search:   search,
		debounce: NewDebouncer(delay),
	}
}

// Input feeds the current text of the field. Unchanged text is a no-op.
// Text shorter than MinQueryLen clears suggestions immediately and cancels
// any pending search.
func (c *Controller) Input(ctx context.Context, text string) {
	c.mu.Lock()
	if text == c.text {
		c.mu.Unlock()
		return
	}
	c.text = text
	c.generation++
	gen := c.generation

	if len([]rune(text)) < MinQueryLen {
		c.options = nil
		c.searching = false
		c.mu.Unlock()
		c.debounce.Cancel()
		return
	}
	c.searching = true
	c.mu.Unlock()

	c.debounce.Trigger(func() {
		c.runSearch(ctx, gen, text)
	})
}

func (c *Controller) runSearch(ctx context.Context, gen uint64, text string) {
	// A newer keystroke may have arrived while this call waited out the
	// debounce period.
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	options, err := c.search(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return // stale response, latest wins
	}
	c.searching = false
	if err != nil {
		slog.Warn("typeahead_search_failed", "query", text, "error", err)
		c.options = nil
		return
	}
	c.options = options
}

// Options returns the current suggestions.
func (c *Controller) Options() []Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.options
}

// Searching reports whether a search is pending or in flight.
func (c *Controller) Searching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searching
}

// Select commits a suggestion: the field text becomes the canonical label
// and the suggestion list closes.
func (c *Controller) Select(opt Option) {
	c.debounce.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.selected = &opt
	c.text = opt.Label
	c.options = nil
	c.searching = false
}

// Selected returns the committed option, or false when nothing is selected.
func (c *Controller) Selected() (Option, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return Option{}, false
	}
	return *c.selected, true
}

// Clear resets text, suggestions and selection.
func (c *Controller) Clear() {
	c.debounce.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.text = ""
	c.options = nil
	c.selected = nil
	c.searching = false
}
