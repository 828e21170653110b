// Package config loads runtime configuration from the environment, with an
// optional .env file for local development. Every key is overridable via a
// FLIGHTDESK_* environment variable.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the fully resolved runtime configuration.
type Config struct {
	Addr       string `mapstructure:"addr"`
	BackendURL string `mapstructure:"backend_url"`
	DBPath     string `mapstructure:"db_path"`

	SessionBackend string        `mapstructure:"session_backend"` // "sqlite" or "redis"
	RedisAddr      string        `mapstructure:"redis_addr"`
	RedisPassword  string        `mapstructure:"redis_password"`
	RedisDB        int           `mapstructure:"redis_db"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`

	CSRFKey string `mapstructure:"csrf_key"`
	DevMode bool   `mapstructure:"dev_mode"`

	NotificationPoll time.Duration `mapstructure:"notification_poll"`
	SearchDebounce   time.Duration `mapstructure:"search_debounce"`
	FilterDebounce   time.Duration `mapstructure:"filter_debounce"`

	ResendAPIKey     string `mapstructure:"resend_api_key"`
	FromEmail        string `mapstructure:"from_email"`
	MaintenanceEmail string `mapstructure:"maintenance_email"`
}

// Load reads the .env file when present, then resolves every key from
// defaults and FLIGHTDESK_* environment variables.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("loading .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("FLIGHTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("backend_url", "http://127.0.0.1:8000/api")
	v.SetDefault("db_path", "flightdesk.db")
	v.SetDefault("session_backend", "sqlite")
	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("session_ttl", 12*time.Hour)
	v.SetDefault("csrf_key", "")
	v.SetDefault("dev_mode", false)
	v.SetDefault("notification_poll", 30*time.Second)
	v.SetDefault("search_debounce", 300*time.Millisecond)
	v.SetDefault("filter_debounce", 500*time.Millisecond)
	v.SetDefault("resend_api_key", "")
	v.SetDefault("from_email", "noreply@flightdesk.local")
	v.SetDefault("maintenance_email", "")

	// AutomaticEnv alone does not surface env-only keys through Unmarshal,
	// so bind each key explicitly.
	for _, key := range []string{
		"addr", "backend_url", "db_path",
		"session_backend", "redis_addr", "redis_password", "redis_db", "session_ttl",
		"csrf_key", "dev_mode",
		"notification_poll", "search_debounce", "filter_debounce",
		"resend_api_key", "from_email", "maintenance_email",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url must not be empty")
	}
	switch c.SessionBackend {
	case "sqlite", "redis":
	default:
		return fmt.Errorf("session_backend must be sqlite or redis, got %q", c.SessionBackend)
	}
	if c.SessionBackend == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("redis_addr must be set when session_backend is redis")
	}
	if c.NotificationPoll <= 0 || c.SearchDebounce <= 0 || c.FilterDebounce <= 0 {
		return fmt.Errorf("poll and debounce intervals must be positive")
	}
	return nil
}
