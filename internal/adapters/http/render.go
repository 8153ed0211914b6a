package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"volunteerhours/internal/adapters/email"
	"volunteerhours/internal/adapters/http/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var funcMap = template.FuncMap{
	"hours": email.FormatHours,
	"count": func(n int) string { return humanize.Comma(int64(n)) },
}

// pageNames lists every page template; each is parsed together with layout.html.
var pageNames = []string{
	"index.html",
	"select_date.html",
	"certificate.html",
	"email_sent.html",
	"admin_login.html",
	"admin.html",
	"add_session.html",
	"perf.html",
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tpl
	}
	return pages, nil
}

// page is the value every template receives.
type page struct {
	CSRFField template.HTML
	IsAdmin   bool
	Data      any
}

// renderTemplate renders a page inside the layout.
// The page is buffered so a failed render still yields a clean 500.
func (a *app) renderTemplate(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	tpl, ok := a.pages[name]
	if !ok {
		internalError(w, fmt.Errorf("unknown template %s", name))
		return
	}
	var buf bytes.Buffer
	err := tpl.Execute(&buf, page{
		CSRFField: csrf.TemplateField(r),
		IsAdmin:   middleware.IsAdmin(r.Context()),
		Data:      data,
	})
	if err != nil {
		internalError(w, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderMarkdown converts trusted configuration markdown to HTML.
func renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// notFound writes a plain-text 404 that echoes the caller's input.
func notFound(w http.ResponseWriter, msg string) {
	http.Error(w, msg, http.StatusNotFound)
}

// badRequest writes a plain-text 400.
func badRequest(w http.ResponseWriter, msg string) {
	http.Error(w, msg, http.StatusBadRequest)
}
