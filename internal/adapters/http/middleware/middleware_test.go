package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/csrf"
)

// TestDeriveKeys tests determinism and per-purpose separation.
func TestDeriveKeys(t *testing.T) {
	a, err := DeriveKeys("secret")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := DeriveKeys("secret")
	c, _ := DeriveKeys("other")

	if !bytes.Equal(a.CSRF, b.CSRF) || !bytes.Equal(a.CookieHash, b.CookieHash) {
		t.Error("same secret should derive the same keys")
	}
	if bytes.Equal(a.CSRF, a.CookieHash) || bytes.Equal(a.CookieHash, a.CookieBlock) {
		t.Error("keys for different purposes should differ")
	}
	if bytes.Equal(a.CSRF, c.CSRF) {
		t.Error("different secrets should derive different keys")
	}
	if len(a.CSRF) != 32 || len(a.CookieBlock) != 32 {
		t.Errorf("key lengths = %d, %d", len(a.CSRF), len(a.CookieBlock))
	}
	if _, err := DeriveKeys(""); err == nil {
		t.Error("expected error for empty secret")
	}
}

// TestRateLimiter_Allow tests the token bucket.
func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	defer rl.Stop()

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third request should be limited")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("other IPs have their own bucket")
	}
}

// TestRateLimit_SafeMethodsPass tests that GETs are never limited.
func TestRateLimit_SafeMethodsPass(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	defer rl.Stop()
	handler := RateLimit(rl)(okHandler(http.StatusOK))

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %d status = %d", i, rr.Code)
		}
	}

	codes := []int{}
	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin", nil))
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("POST codes = %v, want [200 429]", codes)
	}
}

// TestSecurityHeaders tests that the headers are set.
func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders(okHandler(http.StatusOK)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, h := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy"} {
		if rr.Header().Get(h) == "" {
			t.Errorf("missing %s", h)
		}
	}
}

// TestCSRF_RejectsMissingToken tests that a form post without a token is refused
// and one carrying the issued token passes.
func TestCSRF_RejectsMissingToken(t *testing.T) {
	keys, _ := DeriveKeys("secret")
	var token string
	handler := CSRF(keys.CSRF, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = csrf.Token(r)
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/select-date", strings.NewReader("name=x")))
	if rr.Code != http.StatusForbidden {
		t.Errorf("POST without token status = %d, want 403", rr.Code)
	}

	get := httptest.NewRecorder()
	handler.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/", nil))
	if token == "" {
		t.Fatal("no token issued")
	}

	form := url.Values{"name": {"x"}, "gorilla.csrf.Token": {token}}
	req := httptest.NewRequest(http.MethodPost, "/select-date", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range get.Result().Cookies() {
		req.AddCookie(c)
	}
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("POST with token status = %d, want 200", rr.Code)
	}
}

// TestChain tests middleware order.
func TestChain(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(okHandler(http.StatusOK), mw("inner"), mw("outer"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Join(order, ",") != "outer,inner" {
		t.Errorf("order = %v", order)
	}
}
