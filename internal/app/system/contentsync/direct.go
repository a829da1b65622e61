// internal/app/system/contentsync/direct.go
package contentsync

import (
	"context"
	"errors"

	contentstore "github.com/dalemusser/stratascout/internal/app/store/content"
	"github.com/dalemusser/stratascout/internal/app/system/timeouts"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Repository is the authoritative document storage used by DirectStore.
// *contentstore.Store implements it.
type Repository interface {
	Get(ctx context.Context) (contentstore.Snapshot, error)
	Replace(ctx context.Context, doc models.ContentDocument) (string, error)
}

// DirectStore is the store used when this service owns the document in
// MongoDB. The cache file is kept as an offline mirror.
type DirectStore struct {
	repo     Repository
	verifier Verifier
	cache    *CacheFile
	logger   *zap.Logger
}

// NewDirectStore creates a MongoDB-backed store. cache may be nil.
func NewDirectStore(repo Repository, verifier Verifier, cache *CacheFile, logger *zap.Logger) *DirectStore {
	return &DirectStore{repo: repo, verifier: verifier, cache: cache, logger: logger}
}

// Mode implements Store.
func (s *DirectStore) Mode() string { return "mongo" }

// Load implements Store.
func (s *DirectStore) Load(ctx context.Context) Loaded {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), s.logger, "content load")
	defer cancel()

	snap, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Warn("content load from MongoDB failed, falling back",
			zap.Error(err))
		return fallback(s.cache, s.logger)
	}
	return Loaded{Doc: snap.Doc, Source: SourceMongo, Revision: snap.Revision}
}

// Save implements Store.
func (s *DirectStore) Save(ctx context.Context, doc *models.ContentDocument, credential string) SaveResult {
	if res := s.Verify(ctx, credential); !res.OK {
		return res
	}
	if doc == nil {
		return failed(ReasonNoData, "")
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), s.logger, "content save")
	defer cancel()

	rev, err := s.repo.Replace(ctx, *doc)
	if err != nil {
		reason := classifyRepoError(err)
		s.logger.Error("content save to MongoDB failed",
			zap.String("reason", string(reason)),
			zap.Error(err))
		return failed(reason, err.Error())
	}

	mirror(s.cache, *doc, s.logger)
	s.logger.Debug("content saved", zap.String("revision", rev))
	return saved(rev)
}

// Verify implements Store.
func (s *DirectStore) Verify(ctx context.Context, credential string) SaveResult {
	if s.verifier == nil || !s.verifier.Verify(credential) {
		return failed(ReasonUnauthorized, "")
	}
	return saved("")
}

func classifyRepoError(err error) Reason {
	switch {
	case mongo.IsNetworkError(err), mongo.IsTimeout(err),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, mongo.ErrClientDisconnected):
		return ReasonStorageUnavailable
	default:
		return ReasonUnknown
	}
}
