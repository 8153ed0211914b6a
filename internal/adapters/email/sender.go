// Package email delivers volunteer certificates by email.
package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to send an email via an external provider.
type SendRequest struct {
	To       string // Recipient address
	From     string // Sender address, e.g. "Volunteer Office <hours@example.org>"; empty uses the sender default
	Subject  string
	HTML     string
	ReplyTo  string
	Category string // provider tag for filtering, e.g. "certificate"
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
