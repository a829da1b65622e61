// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/stratascout/internal/app/resources"
	messagestore "github.com/dalemusser/stratascout/internal/app/store/messages"
	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/tasks"
	"github.com/dalemusser/stratascout/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// It loads the shared templates, reads the content document once so the
// change hub has a baseline, and starts the background tasks.
//
// The context will be cancelled if the process is asked to shut down while
// Startup is running; honor it in any long-running work.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	loadCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Remote(), logger, "initial content load")
	loaded := deps.Live.Refresh(loadCtx)
	cancel()
	logger.Info("content loaded",
		zap.String("mode", deps.Live.Store().Mode()),
		zap.String("source", string(loaded.Source)),
		zap.String("revision", loaded.Revision))

	startTaskRunner(appCfg, deps, logger)
	return nil
}

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// startTaskRunner registers the background jobs for the configured mode.
func startTaskRunner(appCfg AppConfig, deps DBDeps, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	// Every mode can have other writers: other replicas in mongo mode, the
	// remote's other clients, or another process sharing the cache file.
	if appCfg.RemotePollInterval > 0 {
		taskRunner.Register(tasks.ContentPollJob(deps.Live, appCfg.RemotePollInterval, logger))
	}

	if appCfg.CacheWatch {
		w := contentsync.NewWatcher(deps.Cache, deps.Live.Hub(), logger)
		taskRunner.Spawn(tasks.CacheWatchWorker(w))
	}

	if appCfg.ContactRetention > 0 {
		store := messagestore.New(deps.MongoDatabase)
		taskRunner.Register(tasks.ContactMessageCleanupJob(store, appCfg.ContactRetention, logger))
	}

	taskRunner.Start()
}
