package volunteer

import (
	"context"

	domain "volunteerhours/internal/domain/volunteer"
)

// Store persists Volunteer state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Volunteer, error)
	GetByName(ctx context.Context, name string) (domain.Volunteer, error)
	Ensure(ctx context.Context, name string) (domain.Volunteer, error)
	List(ctx context.Context) ([]domain.Volunteer, error)
	Delete(ctx context.Context, id int64) error
}
