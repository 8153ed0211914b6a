package storage

import (
	"context"
	"database/sql"
	"reflect"
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
	db.SetMaxOpenConns(1)
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
	return names
}

// TestInitDB_CreatesTables verifies the schema applies to an empty database.
func TestInitDB_CreatesTables(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(context.Background(), db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if got := getTableNames(t, db); !reflect.DeepEqual(got, Tables) {
		t.Errorf("tables = %v, want %v", got, Tables)
	}
}

// TestInitDB_Idempotent verifies a second run is harmless.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	if err := InitDB(ctx, db); err != nil {
		t.Fatalf("first InitDB: %v", err)
	}
	if _, err := db.Exec("INSERT INTO volunteer (name, name_key) VALUES ('Jane', 'jane')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := InitDB(ctx, db); err != nil {
		t.Fatalf("second InitDB: %v", err)
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM volunteer").Scan(&n); err != nil || n != 1 {
		t.Errorf("volunteer rows = %d (err %v), want 1", n, err)
	}
}

// TestInitDB_UniqueNameKey verifies duplicate lookup keys are rejected.
func TestInitDB_UniqueNameKey(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(context.Background(), db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	if _, err := db.Exec("INSERT INTO volunteer (name, name_key) VALUES ('Jane Doe', 'jane doe')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := db.Exec("INSERT INTO volunteer (name, name_key) VALUES ('JANE DOE', 'jane doe')"); err == nil {
		t.Error("expected unique constraint violation")
	}
}

// TestInitDB_ForeignKeys verifies sessions need an existing volunteer.
func TestInitDB_ForeignKeys(t *testing.T) {
	db := openTestDB(t)
	if err := InitDB(context.Background(), db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	_, err := db.Exec("INSERT INTO open_session (volunteer_id, date, start_time) VALUES (99, '2024-01-01', '09:00 AM')")
	if err == nil {
		t.Error("expected foreign key violation")
	}
}

// TestOpen_Memory verifies Open returns a usable pool.
func TestOpen_Memory(t *testing.T) {
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if got := getTableNames(t, db); !reflect.DeepEqual(got, Tables) {
		t.Errorf("tables = %v, want %v", got, Tables)
	}
}
