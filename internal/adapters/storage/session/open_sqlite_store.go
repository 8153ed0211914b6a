package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"volunteerhours/internal/adapters/storage"
	domain "volunteerhours/internal/domain/session"
)

const openColumns = "id, volunteer_id, date, start_time"

// OpenSQLiteStore implements OpenStore using SQLite.
type OpenSQLiteStore struct {
	db storage.SQLDB
}

// NewOpenSQLiteStore creates a new OpenStore.
func NewOpenSQLiteStore(db storage.SQLDB) *OpenSQLiteStore {
	return &OpenSQLiteStore{db: db}
}

// Create inserts an open session and returns it with its new ID.
// PRE: s has been validated
// POST: One open_session row added
func (s *OpenSQLiteStore) Create(ctx context.Context, sess domain.OpenSession) (domain.OpenSession, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO open_session (volunteer_id, date, start_time) VALUES (?, ?, ?)",
		sess.VolunteerID, sess.Date.String(), sess.StartTime.String(),
	)
	if err != nil {
		return domain.OpenSession{}, fmt.Errorf("insert open session: %w", err)
	}
	if sess.ID, err = res.LastInsertId(); err != nil {
		return domain.OpenSession{}, err
	}
	return sess, nil
}

// GetByID retrieves an open session.
// PRE: id > 0
// POST: Returns the entity or an error wrapping sql.ErrNoRows
func (s *OpenSQLiteStore) GetByID(ctx context.Context, id int64) (domain.OpenSession, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+openColumns+" FROM open_session WHERE id = ?", id)
	sess, err := scanOpen(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.OpenSession{}, fmt.Errorf("open session not found: %w", err)
	}
	return sess, err
}

// List returns every open session ordered by date then id.
func (s *OpenSQLiteStore) List(ctx context.Context) ([]domain.OpenSession, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+openColumns+" FROM open_session ORDER BY date, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.OpenSession
	for rows.Next() {
		sess, err := scanOpen(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, sess)
	}
	return results, rows.Err()
}

// Delete removes an open session without producing a closed one.
// A missing id is not an error.
func (s *OpenSQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM open_session WHERE id = ?", id)
	return err
}

// Close moves an open session into closed_session with the given end time.
// The open row is claimed with DELETE ... RETURNING inside the transaction,
// so concurrent callers for one id produce at most one closed session.
// PRE: id > 0
// POST: ok=false and no change when the open session does not exist;
// otherwise the open row is gone and the returned closed row exists
func (s *OpenSQLiteStore) Close(ctx context.Context, id int64, end domain.ClockTime) (domain.ClosedSession, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ClosedSession{}, false, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "DELETE FROM open_session WHERE id = ? RETURNING "+openColumns, id)
	open, err := scanOpen(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ClosedSession{}, false, nil
	}
	if err != nil {
		return domain.ClosedSession{}, false, fmt.Errorf("claim open session %d: %w", id, err)
	}

	closed := open.Close(end)
	if closed.ID, err = insertClosed(ctx, tx, closed); err != nil {
		return domain.ClosedSession{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return domain.ClosedSession{}, false, err
	}
	return closed, true, nil
}
