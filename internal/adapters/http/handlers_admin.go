package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"volunteerhours/internal/adapters/export"
	"volunteerhours/internal/adapters/http/middleware"
	"volunteerhours/internal/adapters/http/perf"
	"volunteerhours/internal/application/orchestrators"
	"volunteerhours/internal/application/projections"
	domainSession "volunteerhours/internal/domain/session"
)

// adminLoginView is rendered by admin_login.html.
type adminLoginView struct {
	Error string
}

// handleAdmin renders the dashboard for an admin and the login prompt otherwise.
func (a *app) handleAdmin(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r.Context()) {
		a.renderTemplate(w, r, "admin_login.html", http.StatusOK, adminLoginView{})
		return
	}
	result, err := a.dashboard(r)
	if err != nil {
		internalError(w, err)
		return
	}
	a.renderTemplate(w, r, "admin.html", http.StatusOK, result)
}

func (a *app) dashboard(r *http.Request) (projections.GetAdminDashboardResult, error) {
	return projections.QueryGetAdminDashboard(r.Context(), projections.GetAdminDashboardDeps{
		VolunteerStore:     a.stores.VolunteerStore,
		ClosedSessionStore: a.stores.ClosedSessionStore,
		OpenSessionStore:   a.stores.OpenSessionStore,
	})
}

// handleAdminLogin checks the passkey and starts an admin session.
func (a *app) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteAdminLogin(r.Context(), orchestrators.AdminLoginInput{
		Passkey: r.PostFormValue("passkey"),
	}, orchestrators.AdminLoginDeps{PasskeyHash: a.passkeyHash})
	if errors.Is(err, orchestrators.ErrInvalidPasskey) {
		a.renderTemplate(w, r, "admin_login.html", http.StatusOK, adminLoginView{Error: "Invalid passkey"})
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	// replace any session the caller already had
	if old, ok := middleware.GetSessionFromContext(r.Context()); ok {
		if err := a.sessions.Delete(r.Context(), old.Token); err != nil {
			internalError(w, fmt.Errorf("replace admin session: %w", err))
			return
		}
	}
	s, err := a.sessions.Create(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	if err := middleware.SetSessionCookie(w, a.codec, s.Token); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleLogout ends the admin session.
func (a *app) handleLogout(w http.ResponseWriter, r *http.Request) {
	if s, ok := middleware.GetSessionFromContext(r.Context()); ok {
		if err := a.sessions.Delete(r.Context(), s.Token); err != nil {
			internalError(w, err)
			return
		}
	}
	middleware.ClearSessionCookie(w, a.codec)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// formID parses a positive integer id field.
func formID(r *http.Request, field string) (int64, error) {
	raw := strings.TrimSpace(r.PostFormValue(field))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", field)
	}
	return id, nil
}

// handleCompleteSession closes an open session.
func (a *app) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := formID(r, "session_id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	end, err := domainSession.ParseClockTime(r.PostFormValue("end_time"))
	if err != nil {
		badRequest(w, "end_time must look like 05:00 PM")
		return
	}
	_, _, err = orchestrators.ExecuteCompleteSession(r.Context(), orchestrators.CompleteSessionInput{SessionID: id, End: end},
		orchestrators.CompleteSessionDeps{OpenSessionStore: a.stores.OpenSessionStore})
	if err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/add-session", http.StatusSeeOther)
}

// handleDeleteSession deletes a closed session.
func (a *app) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := formID(r, "session_id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := orchestrators.ExecuteDeleteClosedSession(r.Context(), orchestrators.DeleteSessionInput{SessionID: id},
		orchestrators.DeleteClosedSessionDeps{ClosedSessionStore: a.stores.ClosedSessionStore}); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleDeleteCurrentSession deletes an open session.
func (a *app) handleDeleteCurrentSession(w http.ResponseWriter, r *http.Request) {
	id, err := formID(r, "session_id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := orchestrators.ExecuteDeleteOpenSession(r.Context(), orchestrators.DeleteSessionInput{SessionID: id},
		orchestrators.DeleteOpenSessionDeps{OpenSessionStore: a.stores.OpenSessionStore}); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleDeleteVolunteer deletes a volunteer with all of their sessions.
func (a *app) handleDeleteVolunteer(w http.ResponseWriter, r *http.Request) {
	id, err := formID(r, "volunteer_id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	if err := orchestrators.ExecuteDeleteVolunteer(r.Context(), orchestrators.DeleteVolunteerInput{VolunteerID: id},
		orchestrators.DeleteVolunteerDeps{VolunteerStore: a.stores.VolunteerStore}); err != nil {
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleExport streams the dashboard as a spreadsheet.
func (a *app) handleExport(w http.ResponseWriter, r *http.Request) {
	result, err := a.dashboard(r)
	if err != nil {
		internalError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, result); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="volunteer-hours-%s.xlsx"`, domainSession.DateOf(timeNow())))
	buf.WriteTo(w)
}

// perfView is rendered by perf.html.
type perfView struct {
	perf.Snapshot
	Window string
}

// perfWindows maps the window query parameter to a duration.
var perfWindows = map[string]time.Duration{
	"5m":  5 * time.Minute,
	"1h":  time.Hour,
	"24h": 24 * time.Hour,
}

// handlePerf shows request and query latency from the in-memory collector.
func (a *app) handlePerf(w http.ResponseWriter, r *http.Request) {
	window := r.URL.Query().Get("window")
	d, ok := perfWindows[window]
	if !ok {
		window, d = "1h", time.Hour
	}
	var snap perf.Snapshot
	if a.collector != nil {
		snap = a.collector.Snapshot(timeNow().Add(-d), 10)
	}
	a.renderTemplate(w, r, "perf.html", http.StatusOK, perfView{Snapshot: snap, Window: window})
}
