package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const adminContextKey contextKey = "admin"

// SessionTTL bounds how long an admin stays logged in.
const SessionTTL = 12 * time.Hour

// Session is the server-side record of an admin login.
type Session struct {
	Token     string
	CreatedAt time.Time
}

// SessionStore keeps admin sessions keyed by token.
type SessionStore interface {
	Create(ctx context.Context) (Session, error)
	Get(ctx context.Context, token string) (Session, bool, error)
	Delete(ctx context.Context, token string) error
}

// MemorySessionStore is an in-memory session store.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]Session),
		ttl:      SessionTTL,
		now:      time.Now,
	}
}

// Create stores a new session under a random token.
// PRE: none
// POST: Session is stored and returned
func (ss *MemorySessionStore) Create(_ context.Context) (Session, error) {
	s := Session{Token: uuid.NewString(), CreatedAt: ss.now()}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[s.Token] = s
	return s, nil
}

// Get retrieves a session by token.
// PRE: none
// POST: ok is false for unknown or expired tokens; expired tokens are removed
func (ss *MemorySessionStore) Get(_ context.Context, token string) (Session, bool, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.sessions[token]
	if !ok {
		return Session{}, false, nil
	}
	if ss.now().Sub(s.CreatedAt) > ss.ttl {
		delete(ss.sessions, token)
		return Session{}, false, nil
	}
	return s, true, nil
}

// Delete removes a session by token.
// PRE: none
// POST: Session with given token is removed
func (ss *MemorySessionStore) Delete(_ context.Context, token string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
	return nil
}

const sessionCookieName = "volunteer_admin"

// CookieCodec signs and encrypts the session cookie and decides its Secure flag.
type CookieCodec struct {
	sc     *securecookie.SecureCookie
	secure bool
}

// NewCookieCodec returns the codec for the admin session cookie.
// PRE: hashKey is 32 or 64 bytes; blockKey is 16, 24 or 32 bytes
// POST: cookies it writes are Secure iff secure is true
func NewCookieCodec(hashKey, blockKey []byte, secure bool) *CookieCodec {
	return &CookieCodec{
		sc:     securecookie.New(hashKey, blockKey).MaxAge(int(SessionTTL.Seconds())),
		secure: secure,
	}
}

// Auth returns middleware that resolves the admin session from the cookie.
// It does NOT block unauthenticated requests; use RequireAdmin for that.
// A cookie that fails verification is treated as absent.
func Auth(sessions SessionStore, codec *CookieCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := readSessionCookie(r, codec); ok {
				s, found, err := sessions.Get(r.Context(), token)
				if err != nil {
					slog.Error("session_lookup_failed", "error", err)
				} else if found {
					r = r.WithContext(context.WithValue(r.Context(), adminContextKey, s))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func readSessionCookie(r *http.Request, codec *CookieCodec) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	var token string
	if err := codec.sc.Decode(sessionCookieName, cookie.Value, &token); err != nil {
		slog.Info("auth_event", "event", "cookie_rejected", "reason", err.Error())
		return "", false
	}
	return token, true
}

// RequireAdmin returns middleware that sends callers without an admin session to /admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext extracts the admin session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(adminContextKey).(Session)
	return s, ok
}

// IsAdmin reports whether the request carries an admin session.
func IsAdmin(ctx context.Context) bool {
	_, ok := GetSessionFromContext(ctx)
	return ok
}

// ContextWithSession returns a context with the given session set.
// Intended for use in tests.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, adminContextKey, s)
}

// SetSessionCookie writes the signed session token.
// PRE: token is non-empty
// POST: Cookie set on the response
func SetSessionCookie(w http.ResponseWriter, codec *CookieCodec, token string) error {
	if token == "" {
		return errors.New("empty session token")
	}
	encoded, err := codec.sc.Encode(sessionCookieName, token)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   codec.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
	})
	return nil
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter, codec *CookieCodec) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   codec.secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
