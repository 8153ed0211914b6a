package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"volunteerhours/internal/application/orchestrators"
	"volunteerhours/internal/application/projections"
	domainSession "volunteerhours/internal/domain/session"
	domainVolunteer "volunteerhours/internal/domain/volunteer"
	"volunteerhours/internal/observability"
)

// Not-found messages. Each echoes the caller's raw input.
const (
	msgVolunteerNotFound = "There is no record of volunteer '%s' in our database. Please double check your spelling or stop lying."
	msgNoSessions        = "There is no record of '%s' volunteering on any dates in our database. Please double check your spelling or stop lying."
	msgNoSessionsOnDate  = "There is no record of '%s' volunteering during '%s' in our database. Please double check the date or stop lying."
)

// lookupNotFound maps a lookup error to a 404 and reports whether it did.
func lookupNotFound(w http.ResponseWriter, err error, rawName, rawDate string) bool {
	switch {
	case errors.Is(err, projections.ErrVolunteerNotFound):
		notFound(w, fmt.Sprintf(msgVolunteerNotFound, rawName))
	case errors.Is(err, projections.ErrNoSessions):
		notFound(w, fmt.Sprintf(msgNoSessions, rawName))
	case errors.Is(err, projections.ErrNoSessionsOnDate):
		notFound(w, fmt.Sprintf(msgNoSessionsOnDate, rawName, rawDate))
	default:
		return false
	}
	return true
}

// handleIndex renders the landing page.
func (a *app) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, r, "index.html", http.StatusOK, nil)
}

// handleHealthz reports whether the database answers.
func (a *app) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if a.ping != nil {
		if err := a.ping(r.Context()); err != nil {
			internalError(w, fmt.Errorf("health check: %w", err))
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handleSelectDate lists the dates a volunteer worked.
func (a *app) handleSelectDate(w http.ResponseWriter, r *http.Request) {
	rawName := r.PostFormValue("name")
	result, err := projections.QueryGetWorkedDates(r.Context(), projections.GetWorkedDatesQuery{Name: rawName}, projections.GetWorkedDatesDeps{
		VolunteerStore:     a.stores.VolunteerStore,
		ClosedSessionStore: a.stores.ClosedSessionStore,
	})
	if err != nil {
		if !lookupNotFound(w, err, rawName, "") {
			internalError(w, err)
		}
		return
	}
	a.renderTemplate(w, r, "select_date.html", http.StatusOK, result)
}

// certificateForm holds the parsed certificate request.
type certificateForm struct {
	rawName string
	rawDate string
	date    domainSession.Date // zero when rawDate did not parse
}

// parseCertificateForm reads the lookup fields. Blank names and unparseable
// dates are left for the lookup to report as not found.
func parseCertificateForm(r *http.Request) certificateForm {
	f := certificateForm{rawName: r.PostFormValue("name"), rawDate: r.PostFormValue("date")}
	if date, err := domainSession.ParseDate(f.rawDate); err == nil {
		f.date = date
	}
	return f
}

// certificateView is rendered by certificate.html.
type certificateView struct {
	projections.Certificate
	Lookup string // name as submitted, reused by the email form
	Footer template.HTML
}

// handleGetCertificate shows the total hours for one date.
func (a *app) handleGetCertificate(w http.ResponseWriter, r *http.Request) {
	f := parseCertificateForm(r)

	cert, err := projections.QueryGetCertificate(r.Context(), projections.GetCertificateQuery{Name: f.rawName, Date: f.date}, projections.GetCertificateDeps{
		VolunteerStore:     a.stores.VolunteerStore,
		ClosedSessionStore: a.stores.ClosedSessionStore,
	})
	if err != nil {
		if !lookupNotFound(w, err, f.rawName, f.rawDate) {
			internalError(w, err)
		}
		return
	}
	observability.RecordCertificateIssued(observability.ChannelWeb)
	a.renderTemplate(w, r, "certificate.html", http.StatusOK, certificateView{Certificate: cert, Lookup: f.rawName, Footer: a.footer})
}

// emailSentView is rendered by email_sent.html.
type emailSentView struct {
	projections.Certificate
	To string
}

// handleEmailCertificate emails the certificate for one date.
func (a *app) handleEmailCertificate(w http.ResponseWriter, r *http.Request) {
	f := parseCertificateForm(r)
	to := strings.TrimSpace(r.PostFormValue("email"))

	cert, err := orchestrators.ExecuteEmailCertificate(r.Context(), orchestrators.EmailCertificateInput{
		Name: f.rawName,
		Date: f.date,
		To:   to,
	}, orchestrators.EmailCertificateDeps{
		VolunteerStore:     a.stores.VolunteerStore,
		ClosedSessionStore: a.stores.ClosedSessionStore,
		EmailSender:        a.sender,
		FromAddress:        a.emailFrom,
		ReplyTo:            a.replyTo,
		Footer:             a.footer,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidEmail) {
			badRequest(w, "a valid email address is required")
			return
		}
		if !lookupNotFound(w, err, f.rawName, f.rawDate) {
			internalError(w, err)
		}
		return
	}
	a.renderTemplate(w, r, "email_sent.html", http.StatusOK, emailSentView{Certificate: cert, To: to})
}

// addSessionView is rendered by add_session.html.
type addSessionView struct {
	OpenSessions []projections.OpenSessionRow
	Today        domainSession.Date
}

// handleAddSessionPage renders the sign-in kiosk with open sessions.
func (a *app) handleAddSessionPage(w http.ResponseWriter, r *http.Request) {
	rows, err := projections.QueryGetOpenSessions(r.Context(), projections.GetOpenSessionsDeps{
		VolunteerStore:   a.stores.VolunteerStore,
		OpenSessionStore: a.stores.OpenSessionStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	a.renderTemplate(w, r, "add_session.html", http.StatusOK, addSessionView{
		OpenSessions: rows,
		Today:        domainSession.DateOf(timeNow()),
	})
}

// handleAddSession records a sign-in, or a complete session when end_time is set.
func (a *app) handleAddSession(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("volunteer_name")
	if strings.TrimSpace(name) == "" {
		badRequest(w, "volunteer_name is required")
		return
	}
	date, err := domainSession.ParseDate(r.PostFormValue("date"))
	if err != nil {
		badRequest(w, "date must be YYYY-MM-DD")
		return
	}
	start, err := domainSession.ParseClockTime(r.PostFormValue("start_time"))
	if err != nil {
		badRequest(w, "start_time must look like 09:00 AM")
		return
	}
	input := orchestrators.RecordSessionInput{VolunteerName: name, Date: date, Start: start}
	if raw := strings.TrimSpace(r.PostFormValue("end_time")); raw != "" {
		end, err := domainSession.ParseClockTime(raw)
		if err != nil {
			badRequest(w, "end_time must look like 05:00 PM")
			return
		}
		input.End = &end
	}

	_, err = orchestrators.ExecuteRecordSession(r.Context(), input, orchestrators.RecordSessionDeps{
		VolunteerStore:     a.stores.VolunteerStore,
		OpenSessionStore:   a.stores.OpenSessionStore,
		ClosedSessionStore: a.stores.ClosedSessionStore,
	})
	if err != nil {
		if errors.Is(err, domainVolunteer.ErrEmptyName) || errors.Is(err, domainVolunteer.ErrNameTooLong) {
			badRequest(w, err.Error())
			return
		}
		internalError(w, err)
		return
	}
	http.Redirect(w, r, "/add-session", http.StatusSeeOther)
}
