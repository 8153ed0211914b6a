package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DSN builds the SQLite connection string with WAL, busy timeout and foreign keys.
func DSN(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
}

// Open opens the database at path, checks it answers and applies the schema.
// PRE: path is a writable file path or ":memory:"
// POST: Returns a ready pool with all tables present
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// each connection would get its own empty database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if err := InitDB(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// schema holds the three tables of the volunteer record.
// name_key is the trimmed, lowercased name; its uniqueness makes
// insert-if-absent a single statement.
const schema = `
CREATE TABLE IF NOT EXISTS volunteer (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	name_key TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS closed_session (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	volunteer_id INTEGER NOT NULL,
	date TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	FOREIGN KEY (volunteer_id) REFERENCES volunteer(id)
);

CREATE INDEX IF NOT EXISTS idx_closed_session_volunteer_date
	ON closed_session (volunteer_id, date);

CREATE TABLE IF NOT EXISTS open_session (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	volunteer_id INTEGER NOT NULL,
	date TEXT NOT NULL,
	start_time TEXT NOT NULL,
	FOREIGN KEY (volunteer_id) REFERENCES volunteer(id)
);

CREATE INDEX IF NOT EXISTS idx_open_session_volunteer
	ON open_session (volunteer_id);
`

// Tables lists the tables InitDB creates.
var Tables = []string{"closed_session", "open_session", "volunteer"}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables and indexes exist, foreign keys enforced
func InitDB(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
