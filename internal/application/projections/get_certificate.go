package projections

import (
	"context"

	domainSession "volunteerhours/internal/domain/session"
	"volunteerhours/internal/observability"
)

// GetCertificateQuery carries query parameters.
type GetCertificateQuery struct {
	Name string // raw input
	Date domainSession.Date
}

// Certificate is the total time a volunteer worked on one date.
type Certificate struct {
	VolunteerID int64
	Name        string // display form
	Date        domainSession.Date
	Hours       float64 // rounded to 2 decimals
	Sessions    []domainSession.ClosedSession
}

// GetCertificateDeps holds dependencies for GetCertificate.
type GetCertificateDeps struct {
	VolunteerStore     VolunteerStore
	ClosedSessionStore ClosedSessionStore
}

// QueryGetCertificate sums a volunteer's closed sessions on one date.
// PRE: query.Date is a parsed date, or zero when the input did not parse
// POST: ErrVolunteerNotFound for an unknown name; ErrNoSessionsOnDate when
// no closed session matches or the date is zero (never a zero-hour certificate)
func QueryGetCertificate(ctx context.Context, query GetCertificateQuery, deps GetCertificateDeps) (Certificate, error) {
	v, err := lookupVolunteer(ctx, deps.VolunteerStore, query.Name)
	if err != nil {
		return Certificate{}, err
	}
	if query.Date.IsZero() {
		observability.RecordLookupNotFound("no_sessions_on_date")
		return Certificate{}, ErrNoSessionsOnDate
	}

	sessions, err := deps.ClosedSessionStore.ListByVolunteerIDAndDate(ctx, v.ID, query.Date)
	if err != nil {
		return Certificate{}, err
	}
	if len(sessions) == 0 {
		observability.RecordLookupNotFound("no_sessions_on_date")
		return Certificate{}, ErrNoSessionsOnDate
	}

	return Certificate{
		VolunteerID: v.ID,
		Name:        v.DisplayName(),
		Date:        query.Date,
		Hours:       domainSession.TotalHours(sessions),
		Sessions:    sessions,
	}, nil
}
