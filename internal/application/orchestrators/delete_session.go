package orchestrators

import (
	"context"
	"log/slog"

	"volunteerhours/internal/observability"
)

// DeleteSessionInput carries input for the delete session orchestrators.
type DeleteSessionInput struct {
	SessionID int64
}

// DeleteClosedSessionDeps holds dependencies for DeleteClosedSession.
type DeleteClosedSessionDeps struct {
	ClosedSessionStore ClosedSessionStoreForOrchestrator
}

// ExecuteDeleteClosedSession removes a closed session.
// PRE: none
// POST: No closed session with SessionID exists; a missing id is not an error
func ExecuteDeleteClosedSession(ctx context.Context, input DeleteSessionInput, deps DeleteClosedSessionDeps) error {
	if err := deps.ClosedSessionStore.Delete(ctx, input.SessionID); err != nil {
		return err
	}
	observability.RecordSessionDeleted(observability.KindClosed)
	slog.Info("session_event", "event", "session_deleted", "kind", observability.KindClosed, "session_id", input.SessionID)
	return nil
}

// DeleteOpenSessionDeps holds dependencies for DeleteOpenSession.
type DeleteOpenSessionDeps struct {
	OpenSessionStore OpenSessionStoreForOrchestrator
}

// ExecuteDeleteOpenSession removes an open session without closing it.
// PRE: none
// POST: No open session with SessionID exists; a missing id is not an error
func ExecuteDeleteOpenSession(ctx context.Context, input DeleteSessionInput, deps DeleteOpenSessionDeps) error {
	if err := deps.OpenSessionStore.Delete(ctx, input.SessionID); err != nil {
		return err
	}
	observability.RecordSessionDeleted(observability.KindOpen)
	slog.Info("session_event", "event", "session_deleted", "kind", observability.KindOpen, "session_id", input.SessionID)
	return nil
}
