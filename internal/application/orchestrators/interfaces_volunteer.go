package orchestrators

import (
	"context"

	domainSession "volunteerhours/internal/domain/session"
	domainVolunteer "volunteerhours/internal/domain/volunteer"
)

// VolunteerStoreForSessions defines the volunteer store needed by session orchestrators.
type VolunteerStoreForSessions interface {
	Ensure(ctx context.Context, name string) (domainVolunteer.Volunteer, error)
	Delete(ctx context.Context, id int64) error
}

// ClosedSessionStoreForOrchestrator defines the closed session store needed by orchestrators.
type ClosedSessionStoreForOrchestrator interface {
	Create(ctx context.Context, s domainSession.ClosedSession) (domainSession.ClosedSession, error)
	Delete(ctx context.Context, id int64) error
}

// OpenSessionStoreForOrchestrator defines the open session store needed by orchestrators.
type OpenSessionStoreForOrchestrator interface {
	Create(ctx context.Context, s domainSession.OpenSession) (domainSession.OpenSession, error)
	Delete(ctx context.Context, id int64) error
	Close(ctx context.Context, id int64, end domainSession.ClockTime) (domainSession.ClosedSession, bool, error)
}
