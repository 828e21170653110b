package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"flightdesk/internal/adapters/api"
	emailPkg "flightdesk/internal/adapters/email"
	web "flightdesk/internal/adapters/http"
	"flightdesk/internal/adapters/storage"
	sessionStore "flightdesk/internal/adapters/storage/session"
	"flightdesk/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level := slog.LevelInfo
	if cfg.DevMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Session store: SQLite by default, Redis when configured.
	var sessions sessionStore.Store
	switch cfg.SessionBackend {
	case "redis":
		client := sessionStore.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis unreachable: %v", err)
		}
		sessions = sessionStore.NewRedisStore(client)
		slog.Info("session_store", "backend", "redis", "addr", cfg.RedisAddr)
	default:
		dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		if err := db.Ping(); err != nil {
			log.Fatalf("database unreachable: %v", err)
		}
		if err := storage.InitDB(db); err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		store := sessionStore.NewSQLiteStore(db)
		store.StartJanitor(context.Background(), time.Hour)
		sessions = store
		slog.Info("session_store", "backend", "sqlite", "path", cfg.DBPath)
	}

	// Email sender: Resend when a key is configured, noop otherwise.
	var sender emailPkg.Sender
	if cfg.ResendAPIKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendAPIKey, cfg.FromEmail)
		slog.Info("email_sender", "provider", "resend", "from", cfg.FromEmail)
	} else {
		sender = emailPkg.NewNoopSender()
		if !cfg.DevMode {
			slog.Warn("email_sender_disabled", "hint", "set FLIGHTDESK_RESEND_API_KEY for real delivery")
		}
	}

	handler := web.NewMux("static", &web.Deps{
		Backend:  api.New(cfg.BackendURL),
		Sessions: sessions,
		Email:    sender,
		Config:   cfg,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.Addr, "backend", cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("server_stopping")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown_error", "err", err)
	}
}
