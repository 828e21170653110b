package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"flightdesk/internal/adapters/storage"
	"flightdesk/internal/domain/principal"
	domain "flightdesk/internal/domain/session"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	return NewSQLiteStore(db)
}

func testSession(token string, expiresAt time.Time) domain.Session {
	return domain.Session{
		Token:    token,
		APIToken: "api-" + token,
		Principal: principal.Principal{
			ID:        1,
			FirstName: "Ana",
			LastName:  "Solis",
			Email:     "ana@escuela.test",
			Role:      principal.RoleTutor,
		},
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
}

// TestSaveAndGet verifies round-tripping a session including the principal.
func TestSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := testSession("t1", time.Now().Add(time.Hour))
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.APIToken != want.APIToken {
		t.Errorf("APIToken = %q, want %q", got.APIToken, want.APIToken)
	}
	if got.Principal.Email != "ana@escuela.test" || got.Principal.Role != principal.RoleTutor {
		t.Errorf("Principal = %+v", got.Principal)
	}
}

// TestGetUnknownToken verifies ErrNotFound for an unknown token.
func TestGetUnknownToken(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestGetExpired verifies an expired session is reported and removed.
func TestGetExpired(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession("old", time.Now().Add(-time.Minute))); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err := store.Get(ctx, "old")
	if !errors.Is(err, domain.ErrExpired) {
		t.Fatalf("err = %v, want ErrExpired", err)
	}

	// The expired row must be gone, so a second Get reports not-found.
	_, err = store.Get(ctx, "old")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Get err = %v, want ErrNotFound", err)
	}
}

// TestSaveReplaces verifies saving the same token overwrites the session.
func TestSaveReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testSession("t1", time.Now().Add(time.Hour))
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := first
	second.APIToken = "rotated"
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save (replace): %v", err)
	}

	got, err := store.Get(ctx, "t1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.APIToken != "rotated" {
		t.Errorf("APIToken = %q, want rotated", got.APIToken)
	}
}

// TestDelete verifies deletion, including deleting an unknown token.
func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession("t1", time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "t1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "t1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}

	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete unknown token: %v", err)
	}
}

// TestDeleteExpired verifies bulk cleanup keeps live sessions.
func TestDeleteExpired(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession("live", time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("Save live: %v", err)
	}
	if err := store.Save(ctx, testSession("dead", time.Now().Add(-time.Hour))); err != nil {
		t.Fatalf("Save dead: %v", err)
	}

	if err := store.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}

	if _, err := store.Get(ctx, "live"); err != nil {
		t.Errorf("live session removed: %v", err)
	}
	if _, err := store.Get(ctx, "dead"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("dead session err = %v, want ErrNotFound", err)
	}
}
