package orchestrators

import (
	"context"
	"log/slog"
)

// DeleteVolunteerInput carries input for the delete volunteer orchestrator.
type DeleteVolunteerInput struct {
	VolunteerID int64
}

// DeleteVolunteerDeps holds dependencies for DeleteVolunteer.
type DeleteVolunteerDeps struct {
	VolunteerStore VolunteerStoreForSessions
}

// ExecuteDeleteVolunteer removes a volunteer with all of their sessions.
// PRE: none
// POST: Volunteer and every open and closed session of theirs are gone, or
// nothing changed; a missing id is not an error
func ExecuteDeleteVolunteer(ctx context.Context, input DeleteVolunteerInput, deps DeleteVolunteerDeps) error {
	if err := deps.VolunteerStore.Delete(ctx, input.VolunteerID); err != nil {
		return err
	}
	slog.Info("volunteer_event", "event", "volunteer_deleted", "volunteer_id", input.VolunteerID)
	return nil
}
