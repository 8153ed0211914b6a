package orchestrators

import (
	"context"
	"log/slog"

	domainSession "volunteerhours/internal/domain/session"
	"volunteerhours/internal/observability"
)

// CompleteSessionInput carries input for the complete session orchestrator.
type CompleteSessionInput struct {
	SessionID int64
	End       domainSession.ClockTime
}

// CompleteSessionDeps holds dependencies for CompleteSession.
type CompleteSessionDeps struct {
	OpenSessionStore OpenSessionStoreForOrchestrator
}

// ExecuteCompleteSession closes an open session with the given end time.
// PRE: none
// POST: If the open session existed it is gone and a closed session with the
// same volunteer, date and start replaces it; closed is false otherwise
// INVARIANT: One open session yields at most one closed session
func ExecuteCompleteSession(ctx context.Context, input CompleteSessionInput, deps CompleteSessionDeps) (domainSession.ClosedSession, bool, error) {
	cs, ok, err := deps.OpenSessionStore.Close(ctx, input.SessionID, input.End)
	if err != nil {
		return domainSession.ClosedSession{}, false, err
	}
	if !ok {
		slog.Info("session_event", "event", "close_skipped", "open_session_id", input.SessionID, "reason", "not_found")
		return domainSession.ClosedSession{}, false, nil
	}
	observability.RecordSessionClosed()
	slog.Info("session_event", "event", "signed_out", "open_session_id", input.SessionID, "session_id", cs.ID, "volunteer_id", cs.VolunteerID)
	return cs, true, nil
}
