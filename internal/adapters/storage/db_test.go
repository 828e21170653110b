package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TestInitDB_Fresh verifies the schema applies cleanly to an empty database.
func TestInitDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed on fresh db: %v", err)
	}

	tables := getTableNames(t, db)
	want := []string{"session"}
	if len(tables) != len(want) {
		t.Fatalf("got %d tables, want %d: %v", len(tables), len(want), tables)
	}
	for i := range want {
		if tables[i] != want[i] {
			t.Errorf("table[%d] = %q, want %q", i, tables[i], want[i])
		}
	}
}

// TestInitDB_Idempotent verifies that running InitDB twice produces no errors.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}
}

// TestInitDB_DataSurvival verifies that existing rows survive a re-init.
func TestInitDB_DataSurvival(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	_, err := db.Exec(`INSERT INTO session (token, api_token, principal, created_at, expires_at)
		VALUES ('t1', 'api1', '{}', '2026-01-01T00:00:00Z', '2027-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert test session: %v", err)
	}

	if err := InitDB(db); err != nil {
		t.Fatalf("re-init failed: %v", err)
	}

	var apiToken string
	if err := db.QueryRow("SELECT api_token FROM session WHERE token = 't1'").Scan(&apiToken); err != nil {
		t.Fatalf("session data lost after re-init: %v", err)
	}
	if apiToken != "api1" {
		t.Errorf("api_token = %q, want %q", apiToken, "api1")
	}
}
