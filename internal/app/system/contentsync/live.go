// internal/app/system/contentsync/live.go
package contentsync

import (
	"context"

	"github.com/dalemusser/stratascout/internal/domain/models"
)

// Live serves the current document from the hub's latest event and only goes
// to the store when nothing has been loaded yet or a refresh is requested.
type Live struct {
	store Store
	hub   *Hub
}

// NewLive creates a Live view over store, publishing through hub.
func NewLive(store Store, hub *Hub) *Live {
	return &Live{store: store, hub: hub}
}

// Store returns the underlying store.
func (l *Live) Store() Store { return l.store }

// Hub returns the hub Live publishes to.
func (l *Live) Hub() *Hub { return l.hub }

// Current returns the latest known document.
func (l *Live) Current(ctx context.Context) Loaded {
	if ev, ok := l.hub.Latest(); ok {
		return Loaded{Doc: ev.Doc, Source: ev.Source, Revision: ev.Revision, Degraded: ev.Degraded}
	}
	return l.Refresh(ctx)
}

// Refresh loads from the store and publishes the result if it changed.
func (l *Live) Refresh(ctx context.Context) Loaded {
	loaded := l.store.Load(ctx)
	l.hub.Notify(loaded)
	return loaded
}

// Save writes through the store and publishes the saved document.
func (l *Live) Save(ctx context.Context, doc *models.ContentDocument, credential string) SaveResult {
	res := l.store.Save(ctx, doc, credential)
	if res.OK && doc != nil {
		l.hub.Notify(Loaded{Doc: *doc, Source: SourceSave, Revision: res.Revision})
	}
	return res
}

// Verify checks credential against the underlying store.
func (l *Live) Verify(ctx context.Context, credential string) SaveResult {
	return l.store.Verify(ctx, credential)
}
