package projections

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	domainVolunteer "volunteerhours/internal/domain/volunteer"
	"volunteerhours/internal/observability"
)

// lookupVolunteer resolves a raw name to a volunteer, mapping a missing row
// to ErrVolunteerNotFound.
func lookupVolunteer(ctx context.Context, store VolunteerStore, name string) (domainVolunteer.Volunteer, error) {
	v, err := store.GetByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		slog.Info("lookup_event", "event", "volunteer_not_found", "name", name)
		observability.RecordLookupNotFound("volunteer")
		return domainVolunteer.Volunteer{}, ErrVolunteerNotFound
	}
	return v, err
}
