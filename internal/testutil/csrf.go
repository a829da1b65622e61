package testutil

import (
	"context"
	"net/http"
	"net/url"
)

// csrfTokenKey matches the key used by gorilla/csrf internally.
// This allows us to inject a mock token for testing.
const csrfTokenKey = "gorilla.csrf.Token"

// WithCSRFToken adds a mock CSRF token to the request context.
// This prevents panics or empty tokens when handlers call csrf.Token(r)
// or use viewdata.New which calls csrf.Token internally.
func WithCSRFToken(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), csrfTokenKey, "test-csrf-token-12345")
	return r.WithContext(ctx)
}

// NewAdminRequestWithCSRF creates a request with both the test admin and a
// CSRF token in context. Use it for handlers that render forms.
func NewAdminRequestWithCSRF(method, target string) *http.Request {
	return WithCSRFToken(NewAdminRequest(method, target))
}

// NewAdminFormRequest creates a signed-in form POST with a CSRF token.
func NewAdminFormRequest(target string, form url.Values) *http.Request {
	return WithCSRFToken(WithAdmin(NewFormRequest(target, form), TestAdmin()))
}
