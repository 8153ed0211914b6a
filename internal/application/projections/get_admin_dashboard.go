package projections

import (
	"context"
	"sort"

	domainSession "volunteerhours/internal/domain/session"
	domainVolunteer "volunteerhours/internal/domain/volunteer"
)

// VolunteerSummary is one row of the volunteer table.
type VolunteerSummary struct {
	ID           int64
	Name         string
	DisplayName  string
	SessionCount int
	OpenCount    int
	TotalHours   float64
}

// ClosedSessionRow is a closed session with its volunteer's name.
type ClosedSessionRow struct {
	domainSession.ClosedSession
	VolunteerName string
	Hours         float64
}

// OpenSessionRow is an open session with its volunteer's name.
type OpenSessionRow struct {
	domainSession.OpenSession
	VolunteerName string
}

// GetAdminDashboardResult carries the query result.
type GetAdminDashboardResult struct {
	Volunteers     []VolunteerSummary
	ClosedSessions []ClosedSessionRow
	OpenSessions   []OpenSessionRow
	TotalHours     float64
}

// GetAdminDashboardDeps holds dependencies for GetAdminDashboard.
type GetAdminDashboardDeps struct {
	VolunteerStore     VolunteerStore
	ClosedSessionStore ClosedSessionStore
	OpenSessionStore   OpenSessionStore
}

// QueryGetAdminDashboard gathers every volunteer and session for the admin console.
// PRE: none
// POST: Closed sessions newest date first; open sessions oldest first
func QueryGetAdminDashboard(ctx context.Context, deps GetAdminDashboardDeps) (GetAdminDashboardResult, error) {
	volunteers, err := deps.VolunteerStore.List(ctx)
	if err != nil {
		return GetAdminDashboardResult{}, err
	}
	closed, err := deps.ClosedSessionStore.List(ctx)
	if err != nil {
		return GetAdminDashboardResult{}, err
	}
	open, err := deps.OpenSessionStore.List(ctx)
	if err != nil {
		return GetAdminDashboardResult{}, err
	}

	names := nameIndex(volunteers)
	summaries := make(map[int64]*VolunteerSummary, len(volunteers))
	perVolunteer := make(map[int64][]domainSession.ClosedSession)
	result := GetAdminDashboardResult{
		Volunteers:     make([]VolunteerSummary, 0, len(volunteers)),
		ClosedSessions: make([]ClosedSessionRow, 0, len(closed)),
		OpenSessions:   openRows(open, names),
	}
	for _, v := range volunteers {
		summaries[v.ID] = &VolunteerSummary{ID: v.ID, Name: v.Name, DisplayName: v.DisplayName()}
	}

	for _, c := range closed {
		result.ClosedSessions = append(result.ClosedSessions, ClosedSessionRow{
			ClosedSession: c,
			VolunteerName: names[c.VolunteerID],
			Hours:         domainSession.RoundHours(c.Hours()),
		})
		perVolunteer[c.VolunteerID] = append(perVolunteer[c.VolunteerID], c)
		if s, ok := summaries[c.VolunteerID]; ok {
			s.SessionCount++
		}
	}
	for _, o := range open {
		if s, ok := summaries[o.VolunteerID]; ok {
			s.OpenCount++
		}
	}

	for _, v := range volunteers {
		s := summaries[v.ID]
		s.TotalHours = domainSession.TotalHours(perVolunteer[v.ID])
		result.TotalHours += s.TotalHours
		result.Volunteers = append(result.Volunteers, *s)
	}
	result.TotalHours = domainSession.RoundHours(result.TotalHours)

	sort.SliceStable(result.ClosedSessions, func(i, j int) bool {
		return result.ClosedSessions[j].Date.Before(result.ClosedSessions[i].Date)
	})
	return result, nil
}

// GetOpenSessionsDeps holds dependencies for GetOpenSessions.
type GetOpenSessionsDeps struct {
	VolunteerStore   VolunteerStore
	OpenSessionStore OpenSessionStore
}

// QueryGetOpenSessions lists open sessions with volunteer names for the sign-in page.
func QueryGetOpenSessions(ctx context.Context, deps GetOpenSessionsDeps) ([]OpenSessionRow, error) {
	open, err := deps.OpenSessionStore.List(ctx)
	if err != nil {
		return nil, err
	}
	volunteers, err := deps.VolunteerStore.List(ctx)
	if err != nil {
		return nil, err
	}
	return openRows(open, nameIndex(volunteers)), nil
}

func nameIndex(volunteers []domainVolunteer.Volunteer) map[int64]string {
	names := make(map[int64]string, len(volunteers))
	for _, v := range volunteers {
		names[v.ID] = v.DisplayName()
	}
	return names
}

func openRows(open []domainSession.OpenSession, names map[int64]string) []OpenSessionRow {
	rows := make([]OpenSessionRow, 0, len(open))
	for _, o := range open {
		rows = append(rows, OpenSessionRow{OpenSession: o, VolunteerName: names[o.VolunteerID]})
	}
	return rows
}
