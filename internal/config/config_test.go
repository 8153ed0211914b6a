package config

import (
	"log/slog"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// TestParse_Defaults tests development defaults.
func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 5000 || cfg.DBPath != "volunteer.db" || cfg.RateLimit != 60 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.IsProduction() {
		t.Error("expected development mode")
	}
	if !cfg.GeneratedSecret || len(cfg.SecretKey) != 2*minSecretKeyLength {
		t.Errorf("secret not generated: %q", cfg.SecretKey)
	}
	if !cfg.DefaultPasskey || cfg.AdminPasskey != DevPasskey {
		t.Errorf("passkey = %q, want dev default", cfg.AdminPasskey)
	}
	if cfg.Addr() != ":5000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

// TestParse_GeneratedSecretsDiffer tests that each start gets a fresh secret.
func TestParse_GeneratedSecretsDiffer(t *testing.T) {
	a, _ := Parse(map[string]string{})
	b, _ := Parse(map[string]string{})
	if a.SecretKey == b.SecretKey {
		t.Error("generated secrets should differ")
	}
}

// TestParse_Production tests production requirements.
func TestParse_Production(t *testing.T) {
	secret := strings.Repeat("s", minSecretKeyLength)

	tests := []struct {
		name    string
		environ map[string]string
		wantErr bool
	}{
		{"missing secret", map[string]string{"VOLUNTEER_ENV": "production", "VOLUNTEER_ADMIN_PASSKEY": "pk"}, true},
		{"short secret", map[string]string{"VOLUNTEER_ENV": "production", "SECRET_KEY": "short", "VOLUNTEER_ADMIN_PASSKEY": "pk"}, true},
		{"missing passkey", map[string]string{"VOLUNTEER_ENV": "production", "SECRET_KEY": secret}, true},
		{"complete", map[string]string{"VOLUNTEER_ENV": "production", "SECRET_KEY": secret, "VOLUNTEER_ADMIN_PASSKEY": "pk"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.environ)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && (cfg.GeneratedSecret || cfg.DefaultPasskey) {
				t.Error("production must not use development defaults")
			}
		})
	}
}

// TestParse_Overrides tests explicit values and nested prefixes.
func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"PORT":                 "8080",
		"VOLUNTEER_REDIS_ADDR": "localhost:6379",
		"VOLUNTEER_REDIS_DB":   "2",
		"VOLUNTEER_RATE_LIMIT": "10",
		"LOG_LEVEL":            "debug",
		"VOLUNTEER_RESEND_KEY": "re_123",
		"VOLUNTEER_DB_PATH":    "/tmp/v.db",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8080 || cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 || cfg.RateLimit != 10 || cfg.DBPath != "/tmp/v.db" {
		t.Errorf("cfg = %+v", cfg)
	}
	if level, _ := cfg.SlogLevel(); level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", level)
	}
}

// TestParse_Invalid tests rejected values.
func TestParse_Invalid(t *testing.T) {
	for _, environ := range []map[string]string{
		{"PORT": "abc"},
		{"PORT": "70000"},
		{"VOLUNTEER_RATE_LIMIT": "0"},
		{"LOG_LEVEL": "loud"},
	} {
		if _, err := Parse(environ); err == nil {
			t.Errorf("Parse(%v) succeeded, want error", environ)
		}
	}
}

// TestPasskeyHash tests both passkey sources.
func TestPasskeyHash(t *testing.T) {
	cfg := &Config{AdminPasskey: "open sesame"}
	hash, err := cfg.PasskeyHash()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte("open sesame")) != nil {
		t.Error("hash does not match passkey")
	}

	cfg = &Config{AdminPasskeyHash: string(hash)}
	if got, err := cfg.PasskeyHash(); err != nil || string(got) != string(hash) {
		t.Errorf("PasskeyHash() = %q, %v", got, err)
	}

	cfg = &Config{AdminPasskeyHash: "plain"}
	if _, err := cfg.PasskeyHash(); err == nil {
		t.Error("expected error for a non-bcrypt hash")
	}
}
