// Package notify keeps the navigation shells' unread notification badge
// current by polling the backend on a fixed interval.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the badge refresh period.
const DefaultInterval = 30 * time.Second

// Backend is the API call the poller needs.
type Backend interface {
	UnreadCount(ctx context.Context) (int, error)
}

// Poller polls the unread count on a fixed cadence. A tick that fires while
// the previous request is still in flight is skipped rather than queued, so
// a slow backend never piles up requests. Count updates are last-write-wins.
type Poller struct {
	backend  Backend
	interval time.Duration

	count    atomic.Int64
	inFlight atomic.Bool

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

// NewPoller creates a poller. interval <= 0 falls back to DefaultInterval.
func NewPoller(backend Backend, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{backend: backend, interval: interval}
}

// Start launches the polling loop with an immediate first fetch. Starting a
// running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.running = true
	p.mu.Unlock()

	go p.loop(ctx)
}

// Stop halts the polling loop. Safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.running = false
}

// Running reports whether the polling loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Count returns the most recent unread count.
func (p *Poller) Count() int {
	return int(p.count.Load())
}

// Refresh fetches the count immediately, outside the polling cadence.
// Mark-read actions call this so the badge drops without waiting a tick.
func (p *Poller) Refresh(ctx context.Context) {
	p.fetch(ctx)
}

func (p *Poller) loop(ctx context.Context) {
	p.fetch(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx)
		}
	}
}

func (p *Poller) fetch(ctx context.Context) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return // previous request still running, skip this tick
	}
	defer p.inFlight.Store(false)

	count, err := p.backend.UnreadCount(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("notification_poll_failed", "error", err)
		}
		return // keep the last known count
	}
	p.count.Store(int64(count))
}
