package orchestrators

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/mail"

	emailAdapter "volunteerhours/internal/adapters/email"
	"volunteerhours/internal/application/projections"
	domainSession "volunteerhours/internal/domain/session"
	"volunteerhours/internal/observability"
)

// ErrInvalidEmail is returned when the recipient address does not parse.
var ErrInvalidEmail = errors.New("invalid email address")

// EmailCertificateInput carries input for the email certificate orchestrator.
type EmailCertificateInput struct {
	Name string // raw input
	Date domainSession.Date
	To   string
}

// EmailCertificateDeps holds dependencies for EmailCertificate.
type EmailCertificateDeps struct {
	VolunteerStore     projections.VolunteerStore
	ClosedSessionStore projections.ClosedSessionStore
	EmailSender        emailAdapter.Sender
	FromAddress        string
	ReplyTo            string
	Footer             template.HTML
}

// ExecuteEmailCertificate computes a certificate and emails it to the given address.
// PRE: none
// POST: Same not-found errors as QueryGetCertificate; on success one email is
// handed to the sender and the certificate is returned
func ExecuteEmailCertificate(ctx context.Context, input EmailCertificateInput, deps EmailCertificateDeps) (projections.Certificate, error) {
	addr, err := mail.ParseAddress(input.To)
	if err != nil {
		return projections.Certificate{}, ErrInvalidEmail
	}

	cert, err := projections.QueryGetCertificate(ctx, projections.GetCertificateQuery{Name: input.Name, Date: input.Date}, projections.GetCertificateDeps{
		VolunteerStore:     deps.VolunteerStore,
		ClosedSessionStore: deps.ClosedSessionStore,
	})
	if err != nil {
		return projections.Certificate{}, err
	}

	msg := emailAdapter.CertificateEmail{Name: cert.Name, Date: cert.Date, Hours: cert.Hours, Footer: deps.Footer}
	body, err := emailAdapter.RenderCertificate(msg)
	if err != nil {
		return projections.Certificate{}, err
	}
	res, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:       addr.Address,
		From:     deps.FromAddress,
		Subject:  msg.Subject(),
		HTML:     body,
		ReplyTo:  deps.ReplyTo,
		Category: "certificate",
	})
	if err != nil {
		return projections.Certificate{}, err
	}

	observability.RecordCertificateIssued(observability.ChannelEmail)
	slog.Info("certificate_event", "event", "certificate_emailed", "volunteer_id", cert.VolunteerID, "date", cert.Date.String(), "message_id", res.MessageID)
	return cert, nil
}
