package session

import (
	"context"
	"database/sql"
	"fmt"

	"volunteerhours/internal/adapters/storage"
	domain "volunteerhours/internal/domain/session"
)

const closedColumns = "id, volunteer_id, date, start_time, end_time"

// ClosedSQLiteStore implements ClosedStore using SQLite.
type ClosedSQLiteStore struct {
	db storage.SQLDB
}

// NewClosedSQLiteStore creates a new ClosedStore.
func NewClosedSQLiteStore(db storage.SQLDB) *ClosedSQLiteStore {
	return &ClosedSQLiteStore{db: db}
}

// Create inserts a closed session and returns it with its new ID.
// PRE: s has been validated
// POST: One closed_session row added
func (s *ClosedSQLiteStore) Create(ctx context.Context, cs domain.ClosedSession) (domain.ClosedSession, error) {
	id, err := insertClosed(ctx, s.db, cs)
	if err != nil {
		return domain.ClosedSession{}, err
	}
	cs.ID = id
	return cs, nil
}

// execer is satisfied by storage.SQLDB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertClosed(ctx context.Context, db execer, cs domain.ClosedSession) (int64, error) {
	res, err := db.ExecContext(ctx,
		"INSERT INTO closed_session (volunteer_id, date, start_time, end_time) VALUES (?, ?, ?, ?)",
		cs.VolunteerID, cs.Date.String(), cs.StartTime.String(), cs.EndTime.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert closed session: %w", err)
	}
	return res.LastInsertId()
}

// List returns every closed session ordered by date then id.
func (s *ClosedSQLiteStore) List(ctx context.Context) ([]domain.ClosedSession, error) {
	return s.query(ctx, "SELECT "+closedColumns+" FROM closed_session ORDER BY date, id")
}

// ListByVolunteerID returns a volunteer's closed sessions ordered by date then id.
func (s *ClosedSQLiteStore) ListByVolunteerID(ctx context.Context, volunteerID int64) ([]domain.ClosedSession, error) {
	return s.query(ctx, "SELECT "+closedColumns+" FROM closed_session WHERE volunteer_id = ? ORDER BY date, id", volunteerID)
}

// ListByVolunteerIDAndDate returns a volunteer's closed sessions on one date.
// PRE: volunteerID > 0, date is set
// POST: Returns an empty slice when nothing matches
func (s *ClosedSQLiteStore) ListByVolunteerIDAndDate(ctx context.Context, volunteerID int64, date domain.Date) ([]domain.ClosedSession, error) {
	return s.query(ctx,
		"SELECT "+closedColumns+" FROM closed_session WHERE volunteer_id = ? AND date = ? ORDER BY id",
		volunteerID, date.String(),
	)
}

// ListDistinctDates returns the dates on which a volunteer has closed sessions, ascending.
func (s *ClosedSQLiteStore) ListDistinctDates(ctx context.Context, volunteerID int64) ([]domain.Date, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT date FROM closed_session WHERE volunteer_id = ? ORDER BY date",
		volunteerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []domain.Date
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		d, err := domain.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", raw, err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// Delete removes a closed session. A missing id is not an error.
func (s *ClosedSQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM closed_session WHERE id = ?", id)
	return err
}

func (s *ClosedSQLiteStore) query(ctx context.Context, q string, args ...any) ([]domain.ClosedSession, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.ClosedSession
	for rows.Next() {
		cs, err := scanClosed(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, cs)
	}
	return results, rows.Err()
}
