package projections

import (
	"context"

	domainSession "volunteerhours/internal/domain/session"
	"volunteerhours/internal/observability"
)

// GetWorkedDatesQuery carries query parameters.
type GetWorkedDatesQuery struct {
	Name string // raw input
}

// GetWorkedDatesResult carries the query result.
type GetWorkedDatesResult struct {
	VolunteerID int64
	Name        string // as stored
	DisplayName string
	Dates       []domainSession.Date
}

// GetWorkedDatesDeps holds dependencies for GetWorkedDates.
type GetWorkedDatesDeps struct {
	VolunteerStore     VolunteerStore
	ClosedSessionStore ClosedSessionStore
}

// QueryGetWorkedDates lists the distinct dates a volunteer has closed sessions on.
// PRE: none
// POST: ErrVolunteerNotFound for an unknown name; ErrNoSessions when the
// volunteer exists but has no closed sessions; otherwise dates ascending
func QueryGetWorkedDates(ctx context.Context, query GetWorkedDatesQuery, deps GetWorkedDatesDeps) (GetWorkedDatesResult, error) {
	v, err := lookupVolunteer(ctx, deps.VolunteerStore, query.Name)
	if err != nil {
		return GetWorkedDatesResult{}, err
	}

	dates, err := deps.ClosedSessionStore.ListDistinctDates(ctx, v.ID)
	if err != nil {
		return GetWorkedDatesResult{}, err
	}
	if len(dates) == 0 {
		observability.RecordLookupNotFound("no_sessions")
		return GetWorkedDatesResult{}, ErrNoSessions
	}

	return GetWorkedDatesResult{
		VolunteerID: v.ID,
		Name:        v.Name,
		DisplayName: v.DisplayName(),
		Dates:       dates,
	}, nil
}
