package middleware

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Keys are the independent secrets derived from SECRET_KEY.
type Keys struct {
	CSRF        []byte // 32 bytes
	CookieHash  []byte // 32 bytes
	CookieBlock []byte // 32 bytes, AES-256
}

// DeriveKeys expands one secret into per-purpose keys with HKDF-SHA256.
// PRE: secret is non-empty
// POST: Each key is 32 bytes and differs per purpose
func DeriveKeys(secret string) (Keys, error) {
	if secret == "" {
		return Keys{}, fmt.Errorf("empty secret")
	}
	var keys Keys
	for _, k := range []struct {
		info string
		dst  *[]byte
	}{
		{"volunteerhours csrf", &keys.CSRF},
		{"volunteerhours cookie hash", &keys.CookieHash},
		{"volunteerhours cookie block", &keys.CookieBlock},
	} {
		buf := make([]byte, 32)
		if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(k.info)), buf); err != nil {
			return Keys{}, fmt.Errorf("derive %s key: %w", k.info, err)
		}
		*k.dst = buf
	}
	return keys, nil
}
