// Package auth implements the admin capability gate: a single shared static
// credential guarding the admin-only operations. It is an opaque boolean
// check, not a real trust model; the credential is injected as
// configuration rather than hard-coded.
package auth

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Gate checks a supplied password against the configured bcrypt hash.
type Gate struct {
	hash   []byte
	logger *slog.Logger
}

// NewGate creates a gate over a bcrypt credential hash. An empty hash
// produces a gate that denies everything.
func NewGate(credentialHash string, logger *slog.Logger) *Gate {
	return &Gate{
		hash:   []byte(credentialHash),
		logger: logger.With("component", "auth"),
	}
}

// Authorize reports whether the supplied password matches the configured
// credential.
func (g *Gate) Authorize(password string) bool {
	if len(g.hash) == 0 {
		g.logger.Warn("admin access denied: no credential configured")
		return false
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		g.logger.Warn("admin access denied")
		return false
	}
	g.logger.Info("admin access granted")
	return true
}

// HashCredential produces a bcrypt hash suitable for the gate's
// configuration value.
func HashCredential(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}
