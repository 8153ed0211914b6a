package projections

import (
	"context"

	domainSession "volunteerhours/internal/domain/session"
	domainVolunteer "volunteerhours/internal/domain/volunteer"
)

// VolunteerStore interface for volunteer queries.
type VolunteerStore interface {
	GetByName(ctx context.Context, name string) (domainVolunteer.Volunteer, error)
	List(ctx context.Context) ([]domainVolunteer.Volunteer, error)
}

// ClosedSessionStore interface for closed session queries.
type ClosedSessionStore interface {
	List(ctx context.Context) ([]domainSession.ClosedSession, error)
	ListByVolunteerIDAndDate(ctx context.Context, volunteerID int64, date domainSession.Date) ([]domainSession.ClosedSession, error)
	ListDistinctDates(ctx context.Context, volunteerID int64) ([]domainSession.Date, error)
}

// OpenSessionStore interface for open session queries.
type OpenSessionStore interface {
	List(ctx context.Context) ([]domainSession.OpenSession, error)
}
