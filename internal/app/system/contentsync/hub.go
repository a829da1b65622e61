// internal/app/system/contentsync/hub.go
package contentsync

import (
	"sync"
	"time"

	"github.com/dalemusser/stratascout/internal/app/system/contentdoc"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"github.com/google/uuid"
)

// Event announces that the content document changed.
type Event struct {
	ID          string
	Revision    string
	Fingerprint string
	Source      Source
	Degraded    bool
	At          time.Time
	Doc         models.ContentDocument
}

// subscriberBuffer is the number of events a slow subscriber may lag behind
// before further events are dropped for it.
const subscriberBuffer = 4

// Hub fans change events out to subscribers.
//
// Notify only publishes when the document's fingerprint differs from the last
// one seen, so the several producers (local saves, the cache watcher, the
// poll job) can report the same change without duplicates reaching browsers.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan Event
	nextID int
	latest *Event
	now    func() time.Time
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[int]chan Event),
		now:  time.Now,
	}
}

// Subscribe registers a subscriber. The returned cancel func unregisters it
// and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Notify records loaded as the latest document and publishes it if it changed.
// It reports whether an event was published.
func (h *Hub) Notify(loaded Loaded) bool {
	fp := contentdoc.Fingerprint(loaded.Doc)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.latest != nil && h.latest.Fingerprint == fp {
		if loaded.Revision != "" {
			h.latest.Revision = loaded.Revision
		}
		h.latest.Degraded = loaded.Degraded
		return false
	}

	ev := Event{
		ID:          uuid.NewString(),
		Revision:    loaded.Revision,
		Fingerprint: fp,
		Source:      loaded.Source,
		Degraded:    loaded.Degraded,
		At:          h.now(),
		Doc:         loaded.Doc.Clone(),
	}
	first := h.latest == nil
	h.latest = &ev

	// The first document seen is the baseline, not a change.
	if first {
		return false
	}

	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return true
}

// Latest returns the most recent event, if any document has been seen.
func (h *Hub) Latest() (Event, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return Event{}, false
	}
	ev := *h.latest
	ev.Doc = ev.Doc.Clone()
	return ev, true
}
