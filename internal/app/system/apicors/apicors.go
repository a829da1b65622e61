// Package apicors provides the open CORS policy of the /data sync endpoint.
//
// The endpoint authenticates with a password in the request body, not with
// cookies, so any origin may call it and credentials are never allowed.
package apicors

import (
	"net/http"
)

// Methods and headers the sync endpoint accepts.
const (
	AllowMethods = "GET, POST, OPTIONS"
	AllowHeaders = "Content-Type, Authorization"
)

// Middleware sets Access-Control-Allow-Origin: * and answers preflight
// OPTIONS requests with 200 and an empty body.
//
// Usage in routes.go:
//
//	r.Group(func(r chi.Router) {
//	    r.Use(apicors.Middleware())
//	    r.Mount("/data", dataapi.Routes(h, logger))
//	})
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", AllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", AllowHeaders)
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
