package projections

import (
	"context"
	"errors"
	"testing"

	domainSession "volunteerhours/internal/domain/session"
	domainVolunteer "volunteerhours/internal/domain/volunteer"
)

func certificateDeps(sessions ...domainSession.ClosedSession) GetCertificateDeps {
	return GetCertificateDeps{
		VolunteerStore: &mockVolunteerStore{volunteers: []domainVolunteer.Volunteer{
			{ID: 1, Name: "jane doe"},
			{ID: 2, Name: "Sam"},
		}},
		ClosedSessionStore: &mockClosedSessionStore{sessions: sessions},
	}
}

// TestQueryGetCertificate_SumsSessionsOnDate tests aggregation across sessions.
func TestQueryGetCertificate_SumsSessionsOnDate(t *testing.T) {
	deps := certificateDeps(
		closed(1, 1, "2024-03-05", "09:00 AM", "12:00 PM"),
		closed(2, 1, "2024-03-05", "01:00 PM", "05:45 PM"),
		closed(3, 1, "2024-03-06", "09:00 AM", "05:00 PM"),
		closed(4, 2, "2024-03-05", "09:00 AM", "05:00 PM"),
	)

	cert, err := QueryGetCertificate(context.Background(), GetCertificateQuery{Name: "Jane Doe", Date: mustDate("2024-03-05")}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cert.Hours != 7.75 {
		t.Errorf("Hours = %v, want 7.75", cert.Hours)
	}
	if cert.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", cert.Name, "Jane Doe")
	}
	if len(cert.Sessions) != 2 {
		t.Errorf("len(Sessions) = %d, want 2", len(cert.Sessions))
	}
}

// TestQueryGetCertificate_MidnightWrap tests a session ending after midnight.
func TestQueryGetCertificate_MidnightWrap(t *testing.T) {
	deps := certificateDeps(closed(1, 2, "2024-03-05", "10:00 PM", "02:00 AM"))

	cert, err := QueryGetCertificate(context.Background(), GetCertificateQuery{Name: "sam", Date: mustDate("2024-03-05")}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cert.Hours != 4 {
		t.Errorf("Hours = %v, want 4", cert.Hours)
	}
}

// TestQueryGetCertificate_NoSessionsOnDate tests that a date without sessions is an error, not zero hours.
func TestQueryGetCertificate_NoSessionsOnDate(t *testing.T) {
	deps := certificateDeps(closed(1, 1, "2024-03-05", "09:00 AM", "10:00 AM"))

	_, err := QueryGetCertificate(context.Background(), GetCertificateQuery{Name: "jane doe", Date: mustDate("2024-03-07")}, deps)
	if !errors.Is(err, ErrNoSessionsOnDate) {
		t.Errorf("err = %v, want ErrNoSessionsOnDate", err)
	}
}

// TestQueryGetCertificate_UnknownVolunteer tests the not-found case.
func TestQueryGetCertificate_UnknownVolunteer(t *testing.T) {
	deps := certificateDeps()
	_, err := QueryGetCertificate(context.Background(), GetCertificateQuery{Name: "ghost", Date: mustDate("2024-03-05")}, deps)
	if !errors.Is(err, ErrVolunteerNotFound) {
		t.Errorf("err = %v, want ErrVolunteerNotFound", err)
	}
}

// TestQueryGetCertificate_UnsetDate tests that a zero date resolves the
// volunteer first and then reports no sessions.
func TestQueryGetCertificate_UnsetDate(t *testing.T) {
	deps := certificateDeps(closed(1, 1, "2024-03-05", "09:00 AM", "10:00 AM"))

	_, err := QueryGetCertificate(context.Background(), GetCertificateQuery{Name: "jane doe"}, deps)
	if !errors.Is(err, ErrNoSessionsOnDate) {
		t.Errorf("err = %v, want ErrNoSessionsOnDate", err)
	}
	_, err = QueryGetCertificate(context.Background(), GetCertificateQuery{Name: "ghost"}, deps)
	if !errors.Is(err, ErrVolunteerNotFound) {
		t.Errorf("err = %v, want ErrVolunteerNotFound", err)
	}
}
