package projections

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	domainSession "volunteerhours/internal/domain/session"
	domainVolunteer "volunteerhours/internal/domain/volunteer"
)

type mockVolunteerStore struct {
	volunteers []domainVolunteer.Volunteer
}

// GetByName matches names case-insensitively.
// PRE: none
// POST: Returns sql.ErrNoRows (wrapped) when no volunteer matches
func (m *mockVolunteerStore) GetByName(_ context.Context, name string) (domainVolunteer.Volunteer, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, v := range m.volunteers {
		if v.Key() == key {
			return v, nil
		}
	}
	return domainVolunteer.Volunteer{}, fmt.Errorf("volunteer not found: %w", sql.ErrNoRows)
}

// List returns the seeded volunteers.
func (m *mockVolunteerStore) List(_ context.Context) ([]domainVolunteer.Volunteer, error) {
	return m.volunteers, nil
}

type mockClosedSessionStore struct {
	sessions []domainSession.ClosedSession
	err      error
}

// List returns every seeded session.
func (m *mockClosedSessionStore) List(_ context.Context) ([]domainSession.ClosedSession, error) {
	return m.sessions, m.err
}

// ListByVolunteerIDAndDate filters the seeded sessions.
func (m *mockClosedSessionStore) ListByVolunteerIDAndDate(_ context.Context, volunteerID int64, date domainSession.Date) ([]domainSession.ClosedSession, error) {
	var out []domainSession.ClosedSession
	for _, s := range m.sessions {
		if s.VolunteerID == volunteerID && s.Date == date {
			out = append(out, s)
		}
	}
	return out, m.err
}

// ListDistinctDates returns each date once, in seed order.
func (m *mockClosedSessionStore) ListDistinctDates(_ context.Context, volunteerID int64) ([]domainSession.Date, error) {
	seen := map[domainSession.Date]bool{}
	var out []domainSession.Date
	for _, s := range m.sessions {
		if s.VolunteerID == volunteerID && !seen[s.Date] {
			seen[s.Date] = true
			out = append(out, s.Date)
		}
	}
	return out, m.err
}

type mockOpenSessionStore struct {
	sessions []domainSession.OpenSession
}

// List returns the seeded open sessions.
func (m *mockOpenSessionStore) List(_ context.Context) ([]domainSession.OpenSession, error) {
	return m.sessions, nil
}

func mustDate(s string) domainSession.Date {
	d, err := domainSession.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func closed(id, volunteerID int64, date, start, end string) domainSession.ClosedSession {
	return domainSession.ClosedSession{
		ID:          id,
		VolunteerID: volunteerID,
		Date:        mustDate(date),
		StartTime:   domainSession.MustParseClockTime(start),
		EndTime:     domainSession.MustParseClockTime(end),
	}
}
