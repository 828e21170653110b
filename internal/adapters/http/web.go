package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"flightdesk/internal/adapters/api"
	"flightdesk/internal/adapters/email"
	"flightdesk/internal/adapters/http/middleware"
	sessionstore "flightdesk/internal/adapters/storage/session"
	"flightdesk/internal/config"
)

// Deps holds everything the HTTP layer needs: the backend API client,
// the durable session store and the outbound email sender.
type Deps struct {
	Backend  *api.Client
	Sessions sessionstore.Store
	Email    email.Sender
	Config   config.Config
}

// Global deps instance (set by NewMux)
var deps *Deps

// Per-session controller registry (set by NewMux)
var controllers *registry

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// validate is the shared struct validator for form payloads.
var validate = validator.New(validator.WithRequiredStructEnabled())

// loadCSRFKey resolves the CSRF secret (hex-encoded, 32 bytes). Outside
// dev mode the key MUST be configured; in dev a random per-startup key
// is generated.
func loadCSRFKey(cfg config.Config) []byte {
	if cfg.CSRFKey != "" {
		key, err := hex.DecodeString(cfg.CSRFKey)
		if err != nil || len(key) != 32 {
			log.Fatal("FLIGHTDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if !cfg.DevMode {
		log.Fatal("FLIGHTDESK_CSRF_KEY is required outside dev mode")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (logins won't survive restart). Set FLIGHTDESK_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, d *Deps) http.Handler {
	deps = d
	controllers = newRegistry(d)
	controllers.startSweeper(context.Background())

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	csrfKey := loadCSRFKey(d.Config)

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Request log -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.RequestLog,
		middleware.Auth(d.Sessions),
		middleware.CSRF(csrfKey),
		middleware.SecurityHeaders,
		middleware.RateLimit(limiter),
	)
}
