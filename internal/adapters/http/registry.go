package web

import (
	"context"
	"errors"
	"sync"
	"time"

	"flightdesk/internal/adapters/api"
	"flightdesk/internal/application/notify"
	"flightdesk/internal/application/reports"
	"flightdesk/internal/application/typeahead"
	"flightdesk/internal/domain/principal"
	"flightdesk/internal/domain/session"
)

// sessionControllers bundles the stateful per-session pieces: the report
// screens, the notification badge poller and the form typeaheads. They
// live for the lifetime of the session and are torn down on logout.
type sessionControllers struct {
	reports        *reports.Controller
	poller         *notify.Poller
	studentSearch  *typeahead.Controller
	tutorSearch    *typeahead.Controller
	aircraftSearch *typeahead.Controller

	cancel context.CancelFunc
}

// registry tracks sessionControllers by session token.
type registry struct {
	deps *Deps

	mu      sync.Mutex
	byToken map[string]*sessionControllers
}

func newRegistry(d *Deps) *registry {
	return &registry{deps: d, byToken: make(map[string]*sessionControllers)}
}

// get returns the controllers for the session, creating and starting
// them on first use.
func (r *registry) get(sess session.Session) *sessionControllers {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sc, ok := r.byToken[sess.Token]; ok {
		return sc
	}

	client := r.deps.Backend.WithToken(sess.APIToken)
	cfg := r.deps.Config

	ctx, cancel := context.WithCancel(context.Background())
	sc := &sessionControllers{
		reports:        reports.NewController(client, cfg.FilterDebounce),
		poller:         notify.NewPoller(client, cfg.NotificationPoll),
		studentSearch:  typeahead.NewController(userSearchFunc(client, principal.RoleStudent), cfg.SearchDebounce),
		tutorSearch:    typeahead.NewController(userSearchFunc(client, principal.RoleTutor), cfg.SearchDebounce),
		aircraftSearch: typeahead.NewController(aircraftSearchFunc(client), cfg.SearchDebounce),
		cancel:         cancel,
	}
	sc.poller.Start(ctx)
	r.byToken[sess.Token] = sc
	return sc
}

// drop stops and removes the controllers for a token. Unknown tokens
// are a no-op.
func (r *registry) drop(token string) {
	r.mu.Lock()
	sc, ok := r.byToken[token]
	delete(r.byToken, token)
	r.mu.Unlock()
	if !ok {
		return
	}
	sc.poller.Stop()
	sc.cancel()
}

// sweepInterval is how often the registry checks its entries against the
// session store.
var sweepInterval = 10 * time.Minute

// startSweeper periodically drops controllers whose session the store no
// longer knows, so a poller cannot outlive a session that expired without
// a logout.
func (r *registry) startSweeper(ctx context.Context) {
	go func() {
		t := time.NewTicker(sweepInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				r.sweep(ctx)
			}
		}
	}()
}

// sweep removes entries for tokens that resolve to a missing or expired
// session. Other store errors leave the entry alone.
func (r *registry) sweep(ctx context.Context) {
	r.mu.Lock()
	tokens := make([]string, 0, len(r.byToken))
	for tok := range r.byToken {
		tokens = append(tokens, tok)
	}
	r.mu.Unlock()

	for _, tok := range tokens {
		_, err := r.deps.Sessions.Get(ctx, tok)
		if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
			r.drop(tok)
		}
	}
}

func userSearchFunc(client *api.Client, role string) typeahead.SearchFunc {
	return func(ctx context.Context, text string) ([]typeahead.Option, error) {
		refs, err := client.SearchUsers(ctx, text, role)
		if err != nil {
			return nil, err
		}
		opts := make([]typeahead.Option, 0, len(refs))
		for _, ref := range refs {
			opts = append(opts, typeahead.Option{ID: ref.ID, Label: ref.FullName()})
		}
		return opts, nil
	}
}

func aircraftSearchFunc(client *api.Client) typeahead.SearchFunc {
	return func(ctx context.Context, text string) ([]typeahead.Option, error) {
		refs, err := client.SearchAircraft(ctx, text)
		if err != nil {
			return nil, err
		}
		opts := make([]typeahead.Option, 0, len(refs))
		for _, ref := range refs {
			opts = append(opts, typeahead.Option{ID: ref.ID, Label: ref.Label()})
		}
		return opts, nil
	}
}
