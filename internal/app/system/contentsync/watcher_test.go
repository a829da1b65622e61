package contentsync

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/stratascout/internal/domain/models"
	"go.uber.org/zap"
)

func TestWatcher_PublishesExternalWrites(t *testing.T) {
	cache := NewCacheFile(t.TempDir())
	hub := NewHub()
	hub.Notify(Loaded{Doc: models.DefaultContent()})

	ch, cancel := hub.Subscribe()
	defer cancel()

	w := NewWatcher(cache, hub, zap.NewNop())
	w.SetDebounce(20 * time.Millisecond)

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		stop()
		<-done
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	// Another process writes the cache file.
	other := NewCacheFile(cache.Dir())
	doc := models.DefaultContent()
	doc.Hero.TitleEn = "Written elsewhere"
	if err := other.Write(doc); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	select {
	case ev := <-ch:
		if ev.Source != SourceWatcher {
			t.Errorf("event source = %q, want watcher", ev.Source)
		}
		if ev.Doc.Hero.TitleEn != "Written elsewhere" {
			t.Errorf("event TitleEn = %q", ev.Doc.Hero.TitleEn)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change event from watcher")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	cache := NewCacheFile(t.TempDir() + "/nope")
	w := NewWatcher(cache, NewHub(), zap.NewNop())
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("Run() on a missing directory should fail")
	}
}
