// Package appstate holds the per-request application state: the display
// language and theme, the admin session and what the admin is editing.
//
// A State is built once per request by Middleware and handed to the render
// and edit functions explicitly. Nothing here is shared between requests.
package appstate

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/stratascout/internal/app/system/auth"
	"github.com/dalemusser/stratascout/internal/app/system/editor"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
)

// Theme is the colour scheme preference.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ThemeCookie stores the visitor's theme preference.
const ThemeCookie = "theme"

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Other returns the opposite theme.
func (t Theme) Other() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// State is the application state for one request.
type State struct {
	Lang    i18n.Lang
	Theme   Theme
	Admin   bool
	Editing editor.Target

	credential string
}

// Credential returns the admin password held by the session, or "".
func (s State) Credential() string { return s.credential }

// Dir returns the text direction for the state's language.
func (s State) Dir() string { return s.Lang.Dir() }

// WithEditing returns a copy of s targeting t.
func (s State) WithEditing(t editor.Target) State {
	s.Editing = t
	return s
}

// FromRequest builds the State for r. Admin details come from the session
// middleware, so it must run after auth.LoadSessionAdmin.
func FromRequest(r *http.Request) State {
	st := State{
		Lang:    i18n.Resolve(r),
		Theme:   Light,
		Editing: editor.Target{Mode: editor.Viewing},
	}
	if c, err := r.Cookie(ThemeCookie); err == nil {
		if t, ok := ParseTheme(c.Value); ok {
			st.Theme = t
		}
	}
	if a, ok := auth.CurrentAdmin(r); ok {
		st.Admin = true
		st.credential = a.Credential
	}
	return st
}

type ctxKey struct{}

// Middleware stores the request's State in its context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := FromRequest(r)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, st)))
	})
}

// From returns the State stored by Middleware, or builds one from r.
func From(r *http.Request) State {
	if st, ok := r.Context().Value(ctxKey{}).(State); ok {
		return st
	}
	return FromRequest(r)
}

// SetThemeCookie persists t as the visitor's preference.
func SetThemeCookie(w http.ResponseWriter, t Theme, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     ThemeCookie,
		Value:    string(t),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
