// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	contentstore "github.com/dalemusser/stratascout/internal/app/store/content"
	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown.
type DBDeps struct {
	// MongoDB client and database
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Mailer for contact notifications
	Mailer *mailer.Mailer

	// Content backend. Content is nil unless the mode is mongo.
	Content *contentstore.Store
	Cache   *contentsync.CacheFile
	Live    *contentsync.Live
}
