// internal/app/system/contentsync/local.go
package contentsync

import (
	"context"

	"github.com/dalemusser/stratascout/internal/domain/models"
	"go.uber.org/zap"
)

// LocalStore keeps the document only in the cache file.
//
// Save does not check the credential; the admin session gate in front of
// the editor is the only authorization in this mode. Verify still checks the
// server-held secret so that login stays server-verified.
type LocalStore struct {
	cache    *CacheFile
	verifier Verifier
	logger   *zap.Logger
}

// NewLocalStore creates a cache-only store.
func NewLocalStore(cache *CacheFile, verifier Verifier, logger *zap.Logger) *LocalStore {
	return &LocalStore{cache: cache, verifier: verifier, logger: logger}
}

// Mode implements Store.
func (s *LocalStore) Mode() string { return "local" }

// Load implements Store.
func (s *LocalStore) Load(ctx context.Context) Loaded {
	return fromCache(s.cache, s.logger)
}

// Save implements Store.
func (s *LocalStore) Save(ctx context.Context, doc *models.ContentDocument, credential string) SaveResult {
	if doc == nil {
		return failed(ReasonNoData, "")
	}
	if s.cache == nil {
		return failed(ReasonStorageUnavailable, ErrNotConfigured.Error())
	}
	if err := s.cache.Write(*doc); err != nil {
		reason := ClassifyWriteError(err)
		s.logger.Error("failed to write content cache",
			zap.String("path", s.cache.Path()),
			zap.String("reason", string(reason)),
			zap.Error(err))
		return failed(reason, err.Error())
	}
	s.logger.Debug("content saved to cache", zap.String("path", s.cache.Path()))
	return saved("")
}

// Verify implements Store.
func (s *LocalStore) Verify(ctx context.Context, credential string) SaveResult {
	if s.verifier == nil || !s.verifier.Verify(credential) {
		return failed(ReasonUnauthorized, "")
	}
	return saved("")
}
