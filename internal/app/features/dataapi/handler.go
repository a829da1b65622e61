// Package dataapi serves the /data sync endpoint other deployments of the
// site read from and save to.
//
// Endpoints:
//   - GET /data - the current content document
//   - POST /data {password, data} - overwrite the document
//   - POST /data {password, action: "verify"} - check the password only
//   - OPTIONS /data - CORS preflight
package dataapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	ratelimitstore "github.com/dalemusser/stratascout/internal/app/store/ratelimit"
	"github.com/dalemusser/stratascout/internal/app/system/auditlog"
	"github.com/dalemusser/stratascout/internal/app/system/contentdoc"
	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/jsonutil"
	"github.com/dalemusser/stratascout/internal/app/system/network"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"go.uber.org/zap"
)

// Backend is the content store the endpoint reads and writes.
type Backend interface {
	Refresh(ctx context.Context) contentsync.Loaded
	Save(ctx context.Context, doc *models.ContentDocument, credential string) contentsync.SaveResult
	Verify(ctx context.Context, credential string) contentsync.SaveResult
}

// Limiter throttles repeated wrong passwords per client.
type Limiter interface {
	CheckAllowed(ctx context.Context, key string) (bool, int, *time.Time)
	RecordFailure(ctx context.Context, key string) (bool, *time.Time)
	ClearOnSuccess(ctx context.Context, key string) error
}

// Handler handles /data requests.
type Handler struct {
	backend Backend
	limiter Limiter
	audit   *auditlog.Logger
	logger  *zap.Logger
}

// NewHandler creates a dataapi handler. limiter and audit may be nil.
func NewHandler(backend Backend, limiter Limiter, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		backend: backend,
		limiter: limiter,
		audit:   audit,
		logger:  logger,
	}
}

type postRequest struct {
	Password string          `json:"password"`
	Action   string          `json:"action"`
	Data     json.RawMessage `json:"data"`
}

// Get handles GET /data.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	loaded := h.backend.Refresh(r.Context())

	body, err := contentdoc.Encode(loaded.Doc)
	if err != nil {
		h.logger.Error("failed to encode content document", zap.Error(err))
		writeJSONError(w, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	h.logger.Debug("content served",
		zap.String("source", string(loaded.Source)),
		zap.String("revision", loaded.Revision))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

// Post handles POST /data.
//
// The password is checked before anything else, so a wrong password never
// reveals whether the body carried data.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	var in postRequest
	if err := jsonutil.Decode(r, &in); err != nil {
		writeJSONError(w, "Invalid JSON payload", err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	key := ratelimitstore.Key(ratelimitstore.ScopeData, network.GetClientIP(r))

	if h.limiter != nil {
		if allowed, _, _ := h.limiter.CheckAllowed(ctx, key); !allowed {
			h.audit.ContentSaveFailed(ctx, r, auditlog.ActorAPI, string(contentsync.ReasonUnauthorized)+": rate limited")
			jsonutil.TooManyRequests(w, "Too many attempts")
			return
		}
	}

	if res := h.backend.Verify(ctx, in.Password); !res.OK {
		if h.limiter != nil {
			h.limiter.RecordFailure(ctx, key)
		}
		h.logger.Warn("data api: wrong password", zap.String("ip", network.GetClientIP(r)))
		h.audit.ContentSaveFailed(ctx, r, auditlog.ActorAPI, string(contentsync.ReasonUnauthorized))
		jsonutil.ErrorMessage(w, http.StatusUnauthorized, "Unauthorized", "Wrong password")
		return
	}
	if h.limiter != nil {
		_ = h.limiter.ClearOnSuccess(ctx, key)
	}

	if in.Action == "verify" {
		jsonutil.Success(w, "Password verified")
		return
	}

	if isAbsent(in.Data) {
		jsonutil.BadRequest(w, "No data provided")
		return
	}

	doc, issues, err := contentdoc.Merge(in.Data, models.DefaultContent())
	if err != nil {
		writeJSONError(w, "Invalid data", err.Error(), http.StatusBadRequest)
		return
	}
	for _, is := range issues {
		h.logger.Debug("data api: document repaired", zap.String("issue", is.String()))
	}

	res := h.backend.Save(ctx, &doc, in.Password)
	if !res.OK {
		h.logger.Error("data api: save failed",
			zap.String("reason", string(res.Reason)),
			zap.String("message", res.Message))
		h.audit.ContentSaveFailed(ctx, r, auditlog.ActorAPI, string(res.Reason))
		if res.Reason == contentsync.ReasonUnauthorized {
			jsonutil.ErrorMessage(w, http.StatusUnauthorized, "Unauthorized", "Wrong password")
			return
		}
		writeJSONError(w, "Internal server error", failureDetails(res), http.StatusInternalServerError)
		return
	}

	h.audit.ContentSaved(ctx, r, res.Revision)
	jsonutil.Success(w, "Data saved successfully")
}

// NotAllowed answers any other method.
func (h *Handler) NotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonutil.MethodNotAllowed(w)
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func failureDetails(res contentsync.SaveResult) string {
	if res.Message != "" {
		return res.Message
	}
	return string(res.Reason)
}

// writeJSONError writes {"error": msg, "details": details}.
func writeJSONError(w http.ResponseWriter, msg, details string, status int) {
	jsonutil.ErrorDetails(w, status, msg, details)
}
