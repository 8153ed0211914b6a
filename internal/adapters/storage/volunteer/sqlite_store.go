package volunteer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"volunteerhours/internal/adapters/storage"
	domain "volunteerhours/internal/domain/volunteer"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new volunteer Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Volunteer by its ID.
// PRE: id > 0
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Volunteer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name FROM volunteer WHERE id = ?", id)
	return scanVolunteer(row)
}

// GetByName retrieves a Volunteer by case-insensitive exact name.
// PRE: name is the raw user input
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Volunteer, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name FROM volunteer WHERE name_key = ?", domain.NormalizeName(name))
	return scanVolunteer(row)
}

// Ensure returns the volunteer with this name, creating it if absent.
// Concurrent callers with the same normalized name receive the same row.
// PRE: name passes domain validation
// POST: Exactly one row exists for the normalized name
func (s *SQLiteStore) Ensure(ctx context.Context, name string) (domain.Volunteer, error) {
	v := domain.Volunteer{Name: strings.TrimSpace(name)}
	if err := v.Validate(); err != nil {
		return domain.Volunteer{}, err
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO volunteer (name, name_key) VALUES (?, ?) ON CONFLICT(name_key) DO NOTHING",
		v.Name, v.Key(),
	)
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("insert volunteer: %w", err)
	}
	return s.GetByName(ctx, v.Name)
}

// List returns all volunteers ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Volunteer, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM volunteer ORDER BY name_key, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Volunteer
	for rows.Next() {
		var v domain.Volunteer
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

// Delete removes a volunteer together with all of its open and closed sessions.
// PRE: none; a missing id is not an error
// POST: No volunteer, closed_session or open_session row references id
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM closed_session WHERE volunteer_id = ?",
		"DELETE FROM open_session WHERE volunteer_id = ?",
		"DELETE FROM volunteer WHERE id = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("delete volunteer %d: %w", id, err)
		}
	}
	return tx.Commit()
}

func scanVolunteer(row *sql.Row) (domain.Volunteer, error) {
	var v domain.Volunteer
	err := row.Scan(&v.ID, &v.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Volunteer{}, fmt.Errorf("volunteer not found: %w", err)
	}
	return v, err
}
