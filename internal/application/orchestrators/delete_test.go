package orchestrators

import (
	"context"
	"errors"
	"testing"

	domainSession "volunteerhours/internal/domain/session"
)

// TestExecuteDeleteClosedSession tests delegation to the closed store.
func TestExecuteDeleteClosedSession(t *testing.T) {
	closed := &mockClosedSessionStore{}
	if err := ExecuteDeleteClosedSession(context.Background(), DeleteSessionInput{SessionID: 7}, DeleteClosedSessionDeps{ClosedSessionStore: closed}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(closed.deleted) != 1 || closed.deleted[0] != 7 {
		t.Errorf("deleted = %v, want [7]", closed.deleted)
	}
}

// TestExecuteDeleteOpenSession tests that an open session is removed without closing.
func TestExecuteDeleteOpenSession(t *testing.T) {
	closed := &mockClosedSessionStore{}
	open := newMockOpenSessionStore(closed)
	s, _ := open.Create(context.Background(), domainSession.OpenSession{
		VolunteerID: 1, Date: mustDate("2024-03-05"), StartTime: domainSession.MustParseClockTime("09:00 AM"),
	})

	if err := ExecuteDeleteOpenSession(context.Background(), DeleteSessionInput{SessionID: s.ID}, DeleteOpenSessionDeps{OpenSessionStore: open}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(open.sessions) != 0 || len(closed.sessions) != 0 {
		t.Errorf("open = %d closed = %d, want 0 and 0", len(open.sessions), len(closed.sessions))
	}
}

// TestExecuteDeleteVolunteer tests delegation and error propagation.
func TestExecuteDeleteVolunteer(t *testing.T) {
	vs := newMockVolunteerStore()
	v, _ := vs.Ensure(context.Background(), "Sam")

	if err := ExecuteDeleteVolunteer(context.Background(), DeleteVolunteerInput{VolunteerID: v.ID}, DeleteVolunteerDeps{VolunteerStore: vs}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vs.volunteers) != 0 {
		t.Error("expected volunteer to be removed")
	}

	boom := errors.New("locked")
	vs.err = boom
	if err := ExecuteDeleteVolunteer(context.Background(), DeleteVolunteerInput{VolunteerID: 1}, DeleteVolunteerDeps{VolunteerStore: vs}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
