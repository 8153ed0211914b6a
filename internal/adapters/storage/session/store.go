package session

import (
	"context"

	domain "volunteerhours/internal/domain/session"
)

// ClosedStore persists completed sessions.
type ClosedStore interface {
	Create(ctx context.Context, s domain.ClosedSession) (domain.ClosedSession, error)
	List(ctx context.Context) ([]domain.ClosedSession, error)
	ListByVolunteerID(ctx context.Context, volunteerID int64) ([]domain.ClosedSession, error)
	ListByVolunteerIDAndDate(ctx context.Context, volunteerID int64, date domain.Date) ([]domain.ClosedSession, error)
	ListDistinctDates(ctx context.Context, volunteerID int64) ([]domain.Date, error)
	Delete(ctx context.Context, id int64) error
}

// OpenStore persists sessions that have a start but no end yet.
type OpenStore interface {
	Create(ctx context.Context, s domain.OpenSession) (domain.OpenSession, error)
	GetByID(ctx context.Context, id int64) (domain.OpenSession, error)
	List(ctx context.Context) ([]domain.OpenSession, error)
	Delete(ctx context.Context, id int64) error
	Close(ctx context.Context, id int64, end domain.ClockTime) (domain.ClosedSession, bool, error)
}
