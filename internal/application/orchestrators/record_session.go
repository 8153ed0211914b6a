package orchestrators

import (
	"context"
	"log/slog"

	domainSession "volunteerhours/internal/domain/session"
	domainVolunteer "volunteerhours/internal/domain/volunteer"
	"volunteerhours/internal/observability"
)

// RecordSessionInput carries input for the record session orchestrator.
type RecordSessionInput struct {
	VolunteerName string
	Date          domainSession.Date
	Start         domainSession.ClockTime
	End           *domainSession.ClockTime // nil signs the volunteer in
}

// RecordSessionResult carries whichever session was created.
type RecordSessionResult struct {
	Volunteer domainVolunteer.Volunteer
	Open      *domainSession.OpenSession
	Closed    *domainSession.ClosedSession
}

// RecordSessionDeps holds dependencies for RecordSession.
type RecordSessionDeps struct {
	VolunteerStore     VolunteerStoreForSessions
	OpenSessionStore   OpenSessionStoreForOrchestrator
	ClosedSessionStore ClosedSessionStoreForOrchestrator
}

// ExecuteRecordSession records a sign-in, or a complete session when an end time is given.
// PRE: VolunteerName non-blank; Date set
// POST: Volunteer exists (created if absent); exactly one open or closed session added
func ExecuteRecordSession(ctx context.Context, input RecordSessionInput, deps RecordSessionDeps) (RecordSessionResult, error) {
	v, err := deps.VolunteerStore.Ensure(ctx, input.VolunteerName)
	if err != nil {
		return RecordSessionResult{}, err
	}
	result := RecordSessionResult{Volunteer: v}

	if input.End == nil {
		open := domainSession.OpenSession{VolunteerID: v.ID, Date: input.Date, StartTime: input.Start}
		if err := open.Validate(); err != nil {
			return RecordSessionResult{}, err
		}
		created, err := deps.OpenSessionStore.Create(ctx, open)
		if err != nil {
			return RecordSessionResult{}, err
		}
		observability.RecordSessionRecorded(observability.KindOpen)
		slog.Info("session_event", "event", "signed_in", "session_id", created.ID, "volunteer_id", v.ID, "date", input.Date.String())
		result.Open = &created
		return result, nil
	}

	cs := domainSession.ClosedSession{VolunteerID: v.ID, Date: input.Date, StartTime: input.Start, EndTime: *input.End}
	if err := cs.Validate(); err != nil {
		return RecordSessionResult{}, err
	}
	created, err := deps.ClosedSessionStore.Create(ctx, cs)
	if err != nil {
		return RecordSessionResult{}, err
	}
	observability.RecordSessionRecorded(observability.KindClosed)
	slog.Info("session_event", "event", "session_recorded", "session_id", created.ID, "volunteer_id", v.ID, "date", input.Date.String(), "hours", domainSession.RoundHours(created.Hours()))
	result.Closed = &created
	return result, nil
}
