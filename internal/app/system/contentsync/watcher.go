// internal/app/system/contentsync/watcher.go
package contentsync

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 250 * time.Millisecond

// Watcher publishes cache file changes made by other processes.
//
// The directory is watched rather than the file itself because atomic
// replacement swaps the inode, which would silently end a file watch.
type Watcher struct {
	cache    *CacheFile
	hub      *Hub
	logger   *zap.Logger
	debounce time.Duration
}

// NewWatcher creates a watcher for cache that publishes to hub.
func NewWatcher(cache *CacheFile, hub *Hub, logger *zap.Logger) *Watcher {
	return &Watcher{cache: cache, hub: hub, logger: logger, debounce: DefaultDebounce}
}

// SetDebounce overrides the settle delay.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Run watches until ctx is cancelled. It returns an error only if the
// watch cannot be established.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cache.Dir()); err != nil {
		return fmt.Errorf("watch %s: %w", w.cache.Dir(), err)
	}
	w.logger.Info("watching content cache", zap.String("path", w.cache.Path()))

	target := filepath.Clean(w.cache.Path())
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("content cache watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	doc, issues, err := w.cache.ReadWithIssues()
	if err != nil {
		// A partially replaced or removed file is not a change worth publishing.
		w.logger.Debug("content cache unreadable after change", zap.Error(err))
		return
	}
	logIssues(w.logger, SourceWatcher, issues)
	if w.hub.Notify(Loaded{Doc: doc, Source: SourceWatcher}) {
		w.logger.Info("content cache changed on disk", zap.String("path", w.cache.Path()))
	}
}
