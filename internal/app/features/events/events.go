// Package events streams content change notifications to browsers as
// Server-Sent Events.
package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DefaultHeartbeat keeps idle connections open through proxies.
const DefaultHeartbeat = 25 * time.Second

// Subscriber is the change feed.
type Subscriber interface {
	Subscribe() (<-chan contentsync.Event, func())
}

// Handler serves GET /events.
type Handler struct {
	hub       Subscriber
	heartbeat time.Duration
	logger    *zap.Logger
}

// NewHandler creates an events Handler.
func NewHandler(hub Subscriber, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, heartbeat: DefaultHeartbeat, logger: logger}
}

// SetHeartbeat changes the keep-alive interval.
func (h *Handler) SetHeartbeat(d time.Duration) {
	if d > 0 {
		h.heartbeat = d
	}
}

// Routes mounts the stream.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Stream)
	return r
}

type payload struct {
	Revision    string `json:"revision,omitempty"`
	Fingerprint string `json:"fingerprint"`
	Source      string `json:"source"`
	At          string `json:"at"`
}

// Stream writes one "content" event per document change until the client
// goes away.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := h.hub.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "retry: 5000\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			data, err := json.Marshal(payload{
				Revision:    ev.Revision,
				Fingerprint: ev.Fingerprint,
				Source:      string(ev.Source),
				At:          ev.At.UTC().Format(time.RFC3339),
			})
			if err != nil {
				h.logger.Error("failed to encode change event", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "id: %s\nevent: content\ndata: %s\n\n", ev.ID, data)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}
