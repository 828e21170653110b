package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"flightdesk/internal/domain/principal"
	domain "flightdesk/internal/domain/session"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new session store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves a session by its cookie token.
// PRE: token is non-empty
// POST: Returns the session, ErrNotFound, or ErrExpired (expired row removed)
func (s *SQLiteStore) Get(ctx context.Context, token string) (domain.Session, error) {
	query := "SELECT token, api_token, principal, created_at, expires_at FROM session WHERE token = ?"
	row := s.db.QueryRowContext(ctx, query, token)

	entity, err := scanSession(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}

	if entity.Expired(time.Now()) {
		_ = s.Delete(ctx, token)
		return domain.Session{}, domain.ErrExpired
	}
	return entity, nil
}

// Save persists a session.
// PRE: entity has been validated
// POST: Session is persisted (insert or replace)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Session) error {
	payload, err := json.Marshal(entity.Principal)
	if err != nil {
		return fmt.Errorf("encoding principal: %w", err)
	}

	query := `INSERT INTO session (token, api_token, principal, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(token) DO UPDATE SET
			api_token=excluded.api_token,
			principal=excluded.principal,
			expires_at=excluded.expires_at`

	_, err = s.db.ExecContext(ctx, query,
		entity.Token,
		entity.APIToken,
		string(payload),
		entity.CreatedAt.Format(time.RFC3339Nano),
		entity.ExpiresAt.Format(time.RFC3339Nano),
	)
	return err
}

// Delete removes a session.
// PRE: token is non-empty
// POST: Session with given token is removed
func (s *SQLiteStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE token = ?", token)
	return err
}

// DeleteExpired removes every session past its expiry.
func (s *SQLiteStore) DeleteExpired(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session WHERE expires_at < ?",
		time.Now().Format(time.RFC3339Nano))
	return err
}

// StartJanitor sweeps expired sessions on a fixed interval until ctx is done.
func (s *SQLiteStore) StartJanitor(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.DeleteExpired(ctx); err != nil {
					slog.Warn("session_janitor", "err", err)
				}
			}
		}
	}()
}

// scanSession extracts a Session from a row scanner function.
func scanSession(scan func(dest ...interface{}) error) (domain.Session, error) {
	var entity domain.Session
	var payload, createdAt, expiresAt string
	if err := scan(&entity.Token, &entity.APIToken, &payload, &createdAt, &expiresAt); err != nil {
		return domain.Session{}, err
	}

	var p principal.Principal
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return domain.Session{}, fmt.Errorf("decoding principal: %w", err)
	}
	entity.Principal = p
	entity.CreatedAt, _ = parseTime(createdAt)
	entity.ExpiresAt, _ = parseTime(expiresAt)
	return entity, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
