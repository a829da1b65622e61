// internal/app/system/authutil/password.go
package authutil

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Password rules for the configured admin secret.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt limit
	BcryptCost        = 12
)

var (
	ErrPasswordTooShort = errors.New("admin password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("admin password must be at most 72 bytes")
	ErrPasswordCommon   = errors.New("admin password is too common")
)

// commonPasswords are rejected for a production admin secret.
var commonPasswords = map[string]bool{
	"12345678":  true,
	"123456789": true,
	"password":  true,
	"password1": true,
	"qwerty123": true,
	"iloveyou":  true,
	"letmein1":  true,
	"welcome1":  true,
	"admin123":  true,
	"admin2026": true,
	"scouts123": true,
}

// ValidatePassword checks a clear-text admin secret.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if commonPasswords[strings.ToLower(password)] {
		return ErrPasswordCommon
	}
	return nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plain-text password with a bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
