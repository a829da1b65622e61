// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"

	contentstore "github.com/dalemusser/stratascout/internal/app/store/content"
	"github.com/dalemusser/stratascout/internal/app/system/authutil"
	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/indexes"
	"github.com/dalemusser/stratascout/internal/app/system/mailer"
	"github.com/dalemusser/stratascout/internal/app/system/seeding"
	"github.com/dalemusser/stratascout/internal/app/system/timeouts"
	"github.com/dalemusser/stratascout/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// ConnectDB connects to databases or other backends.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema and
// Startup. This is the place to establish connections to:
//   - Databases (MongoDB, PostgreSQL, MySQL, SQLite, etc.)
//   - Caches (Redis, Memcached)
//   - Message queues (RabbitMQ, Kafka)
//   - External services that require persistent connections
//
// Best practices:
//   - Use coreCfg.DBConnectTimeout to set connection timeouts
//   - Log connection attempts and successes for debugging
//   - Return descriptive errors if connections fail
//   - Store clients in the DBDeps struct for use in handlers
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	// Configure MongoDB connection pool
	poolCfg := wafflemongo.DefaultPoolConfig()
	if appCfg.MongoMaxPoolSize > 0 {
		poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
	}
	if appCfg.MongoMinPoolSize > 0 {
		poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
	}

	client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
	if err != nil {
		return DBDeps{}, err
	}

	db := client.Database(appCfg.MongoDatabase)

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
		zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
	)

	// Initialize email mailer. Left nil when SMTP is not configured; contact
	// notifications are then skipped.
	mailCfg := mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}
	var mail *mailer.Mailer
	if mailCfg.Configured() {
		mail = mailer.New(mailCfg, logger)
		logger.Info("initialized email mailer",
			zap.String("host", appCfg.MailSMTPHost),
			zap.Int("port", appCfg.MailSMTPPort),
		)
	} else {
		logger.Info("email mailer not configured; contact notifications disabled")
	}

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Mailer:        mail,
	}
	if err := buildContent(&deps, appCfg, logger); err != nil {
		return DBDeps{}, err
	}
	return deps, nil
}

// buildContent assembles the content backend for the configured mode. Every
// mode mirrors to the cache file so a restart without the backend still
// serves the last document.
func buildContent(deps *DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	cache := contentsync.NewCacheFile(appCfg.CacheDir)
	if err := os.MkdirAll(cache.Dir(), 0o755); err != nil {
		logger.Warn("content cache directory unavailable",
			zap.String("dir", cache.Dir()),
			zap.Error(err))
	}
	secret := authutil.NewSharedSecret(appCfg.AdminPassword)

	var store contentsync.Store
	switch appCfg.ContentMode {
	case ModeMongo:
		deps.Content = contentstore.New(deps.MongoDatabase)
		store = contentsync.NewDirectStore(deps.Content, secret, cache, logger)
	case ModeRemote:
		client := &http.Client{Timeout: timeouts.Remote()}
		store = contentsync.NewRemoteStore(appCfg.RemoteURL, client, cache, logger)
	case ModeLocal:
		store = contentsync.NewLocalStore(cache, secret, logger)
	default:
		return fmt.Errorf("unknown content_mode %q", appCfg.ContentMode)
	}

	deps.Cache = cache
	deps.Live = contentsync.NewLive(store, contentsync.NewHub())
	logger.Info("content backend ready",
		zap.String("mode", store.Mode()),
		zap.String("cache", cache.Path()),
		zap.Bool("hashed_secret", secret.Hashed()))
	return nil
}

// EnsureSchema sets up indexes or schema as needed.
//
// This runs after ConnectDB succeeds but before Startup and before the HTTP
// handler is built. It is optional; if you do not need indexes or migrations,
// you can leave this as a no-op that returns nil.
//
// This is the place to:
//   - Create database indexes for query performance
//   - Run schema migrations
//   - Validate that required collections/tables exist
//   - Set up initial data (seed data, default records)
//
// The context has a timeout based on coreCfg.IndexBootTimeout, so long-running
// migrations should respect context cancellation.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	// Ensure collections exist and attach JSON-Schema validators.
	// This runs first so indexes can be created on existing collections.
	logger.Info("ensuring collections and validators")
	if err := validators.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure validators", zap.Error(err))
		return err
	}

	// Ensure database indexes for query performance.
	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}

	// Create the content record on first start (mongo mode only).
	if deps.Content != nil {
		logger.Info("seeding site content")
		if err := seeding.SeedContent(ctx, deps.Content, appCfg.SeedFile, logger); err != nil {
			logger.Error("failed to seed site content", zap.Error(err))
			return err
		}
	}

	logger.Info("database schema ensured successfully")
	return nil
}
