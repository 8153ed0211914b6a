package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/dustin/go-humanize"

	"volunteerhours/internal/domain/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var certificateTmpl = template.Must(
	template.New("certificate.html").
		Funcs(template.FuncMap{"hours": FormatHours}).
		ParseFS(templateFS, "templates/certificate.html"),
)

// CertificateEmail is the data rendered into a certificate email.
type CertificateEmail struct {
	Name   string // display form
	Date   session.Date
	Hours  float64
	Footer template.HTML // pre-rendered, trusted
}

// Subject returns the subject line for the certificate email.
func (c CertificateEmail) Subject() string {
	return fmt.Sprintf("Volunteer hours for %s: %s", c.Date.Long(), FormatHours(c.Hours))
}

// RenderCertificate renders the HTML body of a certificate email.
// PRE: c.Name is non-empty
// POST: Returns the complete HTML document
func RenderCertificate(c CertificateEmail) (string, error) {
	var buf bytes.Buffer
	if err := certificateTmpl.Execute(&buf, c); err != nil {
		return "", fmt.Errorf("failed to render certificate email: %w", err)
	}
	return buf.String(), nil
}

// FormatHours renders an hour total with at most two decimals and a unit,
// e.g. "1 hour", "7.75 hours".
func FormatHours(h float64) string {
	s := humanize.FtoaWithDigits(h, 2)
	if s == "1" {
		return s + " hour"
	}
	return s + " hours"
}
