// internal/app/system/authutil/authutil.go
// Package authutil verifies the shared admin secret and checks the
// address fields of public forms.
package authutil

import (
	"crypto/subtle"
	"regexp"
	"strings"
)

// SharedSecret is the single admin password. It may be configured in clear
// text or as a bcrypt hash ("$2a$...", "$2b$...", "$2y$...").
type SharedSecret struct {
	value  string
	hashed bool
}

// NewSharedSecret wraps the configured admin password.
func NewSharedSecret(value string) SharedSecret {
	return SharedSecret{value: value, hashed: IsBcryptHash(value)}
}

// Verify reports whether credential matches the secret. A clear-text
// secret is compared for exact equality.
func (s SharedSecret) Verify(credential string) bool {
	if s.value == "" || credential == "" {
		return false
	}
	if s.hashed {
		return CheckPassword(credential, s.value)
	}
	return subtle.ConstantTimeCompare([]byte(credential), []byte(s.value)) == 1
}

// Hashed reports whether the secret is stored as a bcrypt hash.
func (s SharedSecret) Hashed() bool { return s.hashed }

// Configured reports whether a secret is set.
func (s SharedSecret) Configured() bool { return s.value != "" }

// IsBcryptHash reports whether v looks like a bcrypt hash.
func IsBcryptHash(v string) bool {
	return len(v) == 60 && strings.HasPrefix(v, "$2")
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail performs the same loose format check the site has always
// used: something@something.something with no whitespace.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
