package projections

import "errors"

// Not-found outcomes of the volunteer lookups. Each is reported separately.
var (
	ErrVolunteerNotFound = errors.New("volunteer not found")
	ErrNoSessions        = errors.New("volunteer has no recorded sessions")
	ErrNoSessionsOnDate  = errors.New("volunteer has no sessions on that date")
)
