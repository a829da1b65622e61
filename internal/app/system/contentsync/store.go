// internal/app/system/contentsync/store.go
// Package contentsync loads and saves the site content document across its
// backends (MongoDB, a remote /data endpoint, a local cache file) and
// broadcasts change notifications to in-process subscribers.
package contentsync

import (
	"context"
	"errors"
	"io/fs"

	"github.com/dalemusser/stratascout/internal/app/system/contentdoc"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"go.uber.org/zap"
)

// Loaded is the result of Load. Doc is always fully populated.
//
// Degraded is set when Doc is the built-in defaults standing in for stored
// content that could not be read. Saving an edit of such a snapshot would
// replace the stored document with defaults.
type Loaded struct {
	Doc      models.ContentDocument
	Source   Source
	Revision string
	Degraded bool
}

// Store is the persistence abstraction the site and editor work against.
//
// Load never fails: it falls back through the store's backends down to the
// built-in defaults. Save and Verify report failures as values.
type Store interface {
	Load(ctx context.Context) Loaded
	// Save persists doc. A nil doc yields ReasonNoData.
	Save(ctx context.Context, doc *models.ContentDocument, credential string) SaveResult
	// Verify checks credential without changing anything.
	Verify(ctx context.Context, credential string) SaveResult
	// Mode names the store for logs and the health endpoint.
	Mode() string
}

// Verifier checks a credential against the server-held secret.
type Verifier interface {
	Verify(credential string) bool
}

// fromCache reads the cache file, falling back to the defaults when the
// cache is missing or unusable. A missing cache file is not degraded on its
// own; callers falling back after a primary failure mark it themselves.
func fromCache(cache *CacheFile, logger *zap.Logger) Loaded {
	if cache != nil {
		doc, issues, err := cache.ReadWithIssues()
		if err == nil {
			logIssues(logger, SourceCache, issues)
			return Loaded{Doc: doc, Source: SourceCache}
		}
		if errors.Is(err, fs.ErrNotExist) {
			return Loaded{Doc: models.DefaultContent(), Source: SourceDefaults}
		}
		logger.Warn("content cache unusable, using defaults",
			zap.String("path", cache.Path()),
			zap.Error(err))
		return Loaded{Doc: models.DefaultContent(), Source: SourceDefaults, Degraded: true}
	}
	return Loaded{Doc: models.DefaultContent(), Source: SourceDefaults}
}

// fallback is fromCache after the primary backend failed: defaults at that
// point always stand in for content that exists somewhere.
func fallback(cache *CacheFile, logger *zap.Logger) Loaded {
	l := fromCache(cache, logger)
	if l.Source == SourceDefaults {
		l.Degraded = true
	}
	return l
}

// mirror copies doc to the cache. Failures are logged and otherwise ignored
// because the primary backend already holds the document.
func mirror(cache *CacheFile, doc models.ContentDocument, logger *zap.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Write(doc); err != nil {
		logger.Warn("failed to mirror content to cache",
			zap.String("path", cache.Path()),
			zap.String("reason", string(ClassifyWriteError(err))),
			zap.Error(err))
	}
}

func logIssues(logger *zap.Logger, source Source, issues []contentdoc.Issue) {
	for _, is := range issues {
		logger.Debug("content document repaired",
			zap.String("source", string(source)),
			zap.String("path", is.Path),
			zap.String("issue", is.Message))
	}
}
