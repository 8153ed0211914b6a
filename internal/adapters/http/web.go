// Package web serves the volunteer kiosk, certificate lookup and admin console.
package web

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"volunteerhours/internal/adapters/email"
	"volunteerhours/internal/adapters/http/middleware"
	"volunteerhours/internal/adapters/http/perf"
	sessionStore "volunteerhours/internal/adapters/storage/session"
	volunteerStore "volunteerhours/internal/adapters/storage/volunteer"
)

// Stores holds all storage dependencies.
type Stores struct {
	VolunteerStore     volunteerStore.Store
	ClosedSessionStore sessionStore.ClosedStore
	OpenSessionStore   sessionStore.OpenStore
}

// Options configures NewMux.
type Options struct {
	SecretKey         string
	PasskeyHash       []byte // bcrypt
	Secure            bool   // production: Secure cookies, HTTPS-only CSRF checks
	Sessions          middleware.SessionStore
	Collector         *perf.Collector
	RateLimit         int // form posts per minute per IP
	SlowRequestMs     int
	EmailSender       email.Sender
	EmailFrom         string
	ReplyTo           string
	CertificateFooter string // markdown
	Ping              func(ctx context.Context) error
}

// app carries handler dependencies.
type app struct {
	stores      *Stores
	sessions    middleware.SessionStore
	codec       *middleware.CookieCodec
	collector   *perf.Collector
	passkeyHash []byte
	sender      email.Sender
	emailFrom   string
	replyTo     string
	footer      template.HTML
	ping        func(ctx context.Context) error
	pages       map[string]*template.Template
}

// timeNow is a variable for testability.
var timeNow = time.Now

// NewMux wires HTTP handlers for the app.
// PRE: s has all stores set; opts.SecretKey and opts.PasskeyHash are set
// POST: Returns the fully wrapped handler and a cleanup func for background work
func NewMux(s *Stores, opts Options) (http.Handler, func(), error) {
	if len(opts.PasskeyHash) == 0 {
		return nil, nil, errors.New("admin passkey hash is required")
	}
	keys, err := middleware.DeriveKeys(opts.SecretKey)
	if err != nil {
		return nil, nil, err
	}
	pages, err := parsePages()
	if err != nil {
		return nil, nil, err
	}
	if opts.Sessions == nil {
		opts.Sessions = middleware.NewMemorySessionStore()
	}
	if opts.EmailSender == nil {
		opts.EmailSender = email.NewNoopSender()
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 60
	}

	a := &app{
		stores:      s,
		sessions:    opts.Sessions,
		codec:       middleware.NewCookieCodec(keys.CookieHash, keys.CookieBlock, opts.Secure),
		collector:   opts.Collector,
		passkeyHash: opts.PasskeyHash,
		sender:      opts.EmailSender,
		emailFrom:   opts.EmailFrom,
		replyTo:     opts.ReplyTo,
		footer:      renderMarkdown(opts.CertificateFooter),
		ping:        opts.Ping,
		pages:       pages,
	}

	mux := http.NewServeMux()
	a.registerRoutes(mux)

	limiter := middleware.NewRateLimiter(opts.RateLimit, time.Minute)

	// Recovery -> Timing -> SecurityHeaders -> CSRF -> Auth -> RateLimit -> Mux
	h := middleware.Chain(mux,
		middleware.RateLimit(limiter),
		middleware.Auth(a.sessions, a.codec),
		middleware.CSRF(keys.CSRF, opts.Secure),
		middleware.SecurityHeaders,
		middleware.Timing(opts.Collector, opts.SlowRequestMs),
	)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)(h)
	return h, limiter.Stop, nil
}

func (a *app) registerRoutes(mux *http.ServeMux) {
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", a.handleHealthz)

	mux.HandleFunc("GET /{$}", a.handleIndex)
	mux.HandleFunc("POST /select-date", a.handleSelectDate)
	mux.HandleFunc("POST /get-certificate", a.handleGetCertificate)
	mux.HandleFunc("POST /email-certificate", a.handleEmailCertificate)

	mux.HandleFunc("GET /admin", a.handleAdmin)
	mux.HandleFunc("POST /admin", a.handleAdminLogin)
	mux.HandleFunc("POST /logout", a.handleLogout)

	mux.HandleFunc("GET /add-session", a.handleAddSessionPage)
	mux.HandleFunc("POST /add-session", a.handleAddSession)

	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(h) }
	mux.Handle("POST /complete-session", admin(a.handleCompleteSession))
	mux.Handle("POST /delete-session", admin(a.handleDeleteSession))
	mux.Handle("POST /delete-current-session", admin(a.handleDeleteCurrentSession))
	mux.Handle("POST /delete-volunteer", admin(a.handleDeleteVolunteer))
	mux.Handle("GET /admin/export.xlsx", admin(a.handleExport))
	mux.Handle("GET /admin/perf", admin(a.handlePerf))
}

// recoveryLogger routes recovered panics to slog.
type recoveryLogger struct{}

// Println implements handlers.RecoveryHandlerLogger.
func (recoveryLogger) Println(v ...any) {
	slog.Error("panic_recovered", "detail", v)
}
