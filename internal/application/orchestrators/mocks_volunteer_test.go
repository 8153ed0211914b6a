package orchestrators

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	domainSession "volunteerhours/internal/domain/session"
	domainVolunteer "volunteerhours/internal/domain/volunteer"
)

// mockVolunteerStore keeps volunteers in memory with the same
// insert-if-absent semantics as the SQLite store.
type mockVolunteerStore struct {
	mu         sync.Mutex
	nextID     int64
	volunteers map[int64]domainVolunteer.Volunteer
	deleted    []int64
	err        error
}

func newMockVolunteerStore() *mockVolunteerStore {
	return &mockVolunteerStore{volunteers: make(map[int64]domainVolunteer.Volunteer)}
}

// Ensure returns the volunteer with a matching key, creating it if absent.
// PRE: name is non-blank
// POST: Exactly one volunteer with the name's key exists
func (m *mockVolunteerStore) Ensure(_ context.Context, name string) (domainVolunteer.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domainVolunteer.Volunteer{}, m.err
	}
	v := domainVolunteer.Volunteer{Name: strings.TrimSpace(name)}
	if err := v.Validate(); err != nil {
		return domainVolunteer.Volunteer{}, err
	}
	for _, existing := range m.volunteers {
		if existing.Key() == v.Key() {
			return existing, nil
		}
	}
	m.nextID++
	v.ID = m.nextID
	m.volunteers[v.ID] = v
	return v, nil
}

// GetByName matches names case-insensitively.
// PRE: none
// POST: Returns a wrapped sql.ErrNoRows when absent
func (m *mockVolunteerStore) GetByName(_ context.Context, name string) (domainVolunteer.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := domainVolunteer.NormalizeName(name)
	for _, v := range m.volunteers {
		if v.Key() == key {
			return v, nil
		}
	}
	return domainVolunteer.Volunteer{}, fmt.Errorf("volunteer not found: %w", sql.ErrNoRows)
}

// List returns all volunteers.
func (m *mockVolunteerStore) List(_ context.Context) ([]domainVolunteer.Volunteer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domainVolunteer.Volunteer
	for _, v := range m.volunteers {
		out = append(out, v)
	}
	return out, nil
}

// Delete removes the volunteer and records the call.
func (m *mockVolunteerStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.volunteers, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockClosedSessionStore struct {
	nextID   int64
	sessions []domainSession.ClosedSession
	deleted  []int64
}

// Create assigns an id and stores the session.
func (m *mockClosedSessionStore) Create(_ context.Context, s domainSession.ClosedSession) (domainSession.ClosedSession, error) {
	m.nextID++
	s.ID = m.nextID
	m.sessions = append(m.sessions, s)
	return s, nil
}

// Delete records the call.
func (m *mockClosedSessionStore) Delete(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

// List returns all sessions.
func (m *mockClosedSessionStore) List(_ context.Context) ([]domainSession.ClosedSession, error) {
	return m.sessions, nil
}

// ListByVolunteerIDAndDate filters stored sessions.
func (m *mockClosedSessionStore) ListByVolunteerIDAndDate(_ context.Context, volunteerID int64, date domainSession.Date) ([]domainSession.ClosedSession, error) {
	var out []domainSession.ClosedSession
	for _, s := range m.sessions {
		if s.VolunteerID == volunteerID && s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListDistinctDates is a stub to satisfy projections.ClosedSessionStore.
func (m *mockClosedSessionStore) ListDistinctDates(_ context.Context, _ int64) ([]domainSession.Date, error) {
	return nil, nil
}

type mockOpenSessionStore struct {
	nextID   int64
	sessions map[int64]domainSession.OpenSession
	deleted  []int64
	closed   *mockClosedSessionStore
}

func newMockOpenSessionStore(closed *mockClosedSessionStore) *mockOpenSessionStore {
	return &mockOpenSessionStore{sessions: make(map[int64]domainSession.OpenSession), closed: closed}
}

// Create assigns an id and stores the session.
func (m *mockOpenSessionStore) Create(_ context.Context, s domainSession.OpenSession) (domainSession.OpenSession, error) {
	m.nextID++
	s.ID = m.nextID
	m.sessions[s.ID] = s
	return s, nil
}

// Delete removes the session and records the call.
func (m *mockOpenSessionStore) Delete(_ context.Context, id int64) error {
	delete(m.sessions, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// Close moves an open session into the closed store.
// PRE: none
// POST: ok is false when id is unknown
func (m *mockOpenSessionStore) Close(ctx context.Context, id int64, end domainSession.ClockTime) (domainSession.ClosedSession, bool, error) {
	s, ok := m.sessions[id]
	if !ok {
		return domainSession.ClosedSession{}, false, nil
	}
	delete(m.sessions, id)
	cs, err := m.closed.Create(ctx, s.Close(end))
	return cs, err == nil, err
}

func mustDate(s string) domainSession.Date {
	d, err := domainSession.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
