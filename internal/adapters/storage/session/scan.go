package session

import (
	"fmt"

	domain "volunteerhours/internal/domain/session"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func parseStored(date, start string) (domain.Date, domain.ClockTime, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return domain.Date{}, 0, fmt.Errorf("stored date %q: %w", date, err)
	}
	st, err := domain.ParseClockTime(start)
	if err != nil {
		return domain.Date{}, 0, fmt.Errorf("stored start_time %q: %w", start, err)
	}
	return d, st, nil
}

func scanClosed(sc scanner) (domain.ClosedSession, error) {
	var s domain.ClosedSession
	var date, start, end string
	if err := sc.Scan(&s.ID, &s.VolunteerID, &date, &start, &end); err != nil {
		return domain.ClosedSession{}, err
	}
	var err error
	if s.Date, s.StartTime, err = parseStored(date, start); err != nil {
		return domain.ClosedSession{}, err
	}
	if s.EndTime, err = domain.ParseClockTime(end); err != nil {
		return domain.ClosedSession{}, fmt.Errorf("stored end_time %q: %w", end, err)
	}
	return s, nil
}

func scanOpen(sc scanner) (domain.OpenSession, error) {
	var s domain.OpenSession
	var date, start string
	if err := sc.Scan(&s.ID, &s.VolunteerID, &date, &start); err != nil {
		return domain.OpenSession{}, err
	}
	var err error
	if s.Date, s.StartTime, err = parseStored(date, start); err != nil {
		return domain.OpenSession{}, err
	}
	return s, nil
}
