package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"volunteerhours/internal/observability"
)

// ErrInvalidPasskey is returned for a wrong or empty admin passkey.
var ErrInvalidPasskey = errors.New("invalid passkey")

// AdminLoginInput carries input for the admin login orchestrator.
type AdminLoginInput struct {
	Passkey string
}

// AdminLoginDeps holds dependencies for AdminLogin.
type AdminLoginDeps struct {
	PasskeyHash []byte // bcrypt
}

// ExecuteAdminLogin checks the shared admin passkey.
// PRE: deps.PasskeyHash is a bcrypt hash
// POST: nil on a match, ErrInvalidPasskey otherwise
func ExecuteAdminLogin(_ context.Context, input AdminLoginInput, deps AdminLoginDeps) error {
	if input.Passkey == "" {
		slog.Info("auth_event", "event", "admin_login_failed", "reason", "empty")
		observability.RecordAdminLogin(false)
		return ErrInvalidPasskey
	}
	if err := bcrypt.CompareHashAndPassword(deps.PasskeyHash, []byte(input.Passkey)); err != nil {
		slog.Info("auth_event", "event", "admin_login_failed", "reason", "mismatch")
		observability.RecordAdminLogin(false)
		return ErrInvalidPasskey
	}
	slog.Info("auth_event", "event", "admin_login_success")
	observability.RecordAdminLogin(true)
	return nil
}

// HashPasskey hashes a plaintext passkey for AdminLoginDeps.
func HashPasskey(passkey string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(passkey), bcrypt.DefaultCost)
}
