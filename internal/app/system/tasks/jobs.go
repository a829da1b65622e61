package tasks

import (
	"context"
	"time"

	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"go.uber.org/zap"
)

// ContentPollJob reloads the content document on an interval so changes made
// by other writers reach this process's subscribers.
func ContentPollJob(live *contentsync.Live, interval time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "content-poll",
		Interval: interval,
		Run: func(ctx context.Context) error {
			before, _ := live.Hub().Latest()
			loaded := live.Refresh(ctx)
			if loaded.Source == contentsync.SourceDefaults {
				logger.Debug("content poll fell back to defaults",
					zap.String("mode", live.Store().Mode()))
			}
			if after, ok := live.Hub().Latest(); ok && after.Fingerprint != before.Fingerprint && before.Fingerprint != "" {
				logger.Info("content changed",
					zap.String("source", string(loaded.Source)),
					zap.String("revision", loaded.Revision))
			}
			return nil
		},
	}
}

// CacheWatchWorker runs the cache file watcher until shutdown.
func CacheWatchWorker(w *contentsync.Watcher) Worker {
	return Worker{
		Name: "content-cache-watch",
		Run:  w.Run,
	}
}

// ContactCleanupInterval is how often read contact messages are purged.
const ContactCleanupInterval = time.Hour

// MessagePurger deletes read contact messages created before a cutoff.
type MessagePurger interface {
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ContactMessageCleanupJob removes read contact messages older than retention.
func ContactMessageCleanupJob(store MessagePurger, retention time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "contact-message-cleanup",
		Interval: ContactCleanupInterval,
		Run: func(ctx context.Context) error {
			deleted, err := store.DeleteReadBefore(ctx, time.Now().Add(-retention))
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("cleaned up old contact messages",
					zap.Int64("deleted", deleted))
			}
			return nil
		},
	}
}
