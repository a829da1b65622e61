package dataapi

import (
	"net/http"

	"github.com/dalemusser/stratascout/internal/app/system/apicors"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /data router.
//
// CORS is open because the password travels in the body, not in cookies.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(apicors.Middleware())
	r.Get("/", h.Get)
	r.Post("/", h.Post)
	r.MethodNotAllowed(h.NotAllowed)
	return r
}
