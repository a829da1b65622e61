// internal/app/features/health/health.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is the part of *mongo.Client the checks use.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Content reports where the served document came from.
type Content interface {
	Current(ctx context.Context) contentsync.Loaded
}

// Handler provides health check endpoints.
type Handler struct {
	mongo   Pinger
	content Content
	mode    string
	logger  *zap.Logger
}

// NewHandler creates a new health check Handler. content may be nil.
func NewHandler(mongo Pinger, content Content, mode string, logger *zap.Logger) *Handler {
	return &Handler{
		mongo:   mongo,
		content: content,
		mode:    mode,
		logger:  logger,
	}
}

// Response represents the health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
	Content  *ContentStatus    `json:"content,omitempty"`
}

// ContentStatus describes the document being served.
type ContentStatus struct {
	Mode     string `json:"mode"`
	Source   string `json:"source"`
	Revision string `json:"revision,omitempty"`
}

// Routes returns a chi.Router with health check routes mounted.
// Provides /health (full check), /health/ready, and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds /ready and /livez endpoints directly on the root router.
// This is the standard convention for Kubernetes probes:
//   - /ready (or /readyz) - readiness probe
//   - /livez - liveness probe
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

func (h *Handler) ping(ctx context.Context) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Ping(), h.logger, "health ping")
	defer cancel()
	return h.mongo.Ping(ctx, readpref.Primary())
}

// Check pings MongoDB and reports the content backend. Serving built-in
// defaults is reported as degraded but still answers 200, since the site
// renders.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:   "ok",
		Services: make(map[string]string),
	}
	code := http.StatusOK

	if err := h.ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Services["mongodb"] = "unavailable"
		code = http.StatusServiceUnavailable
		h.logger.Warn("health check: mongodb ping failed", zap.Error(err))
	} else {
		resp.Services["mongodb"] = "ok"
	}

	if h.content != nil {
		cur := h.content.Current(r.Context())
		resp.Content = &ContentStatus{Mode: h.mode, Source: string(cur.Source), Revision: cur.Revision}
		resp.Services["content"] = "ok"
		if cur.Source == contentsync.SourceDefaults {
			resp.Services["content"] = "defaults"
			resp.Status = "degraded"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

// Ready checks if the service is ready to accept requests.
// Used by Kubernetes readiness probes.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := h.ping(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"not ready"}`))
		return
	}
	_, _ = w.Write([]byte(`{"status":"ready"}`))
}

// Live checks if the service is alive.
// Used by Kubernetes liveness probes.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"alive"}`))
}
