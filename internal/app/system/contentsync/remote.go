// internal/app/system/contentsync/remote.go
package contentsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dalemusser/stratascout/internal/app/system/contentdoc"
	"github.com/dalemusser/stratascout/internal/app/system/timeouts"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"go.uber.org/zap"
)

// maxRemoteBody bounds how much of a remote response is read.
const maxRemoteBody = 4 << 20

// RemoteStore reads and writes the document through a remote /data
// endpoint and mirrors every successful read or write to the cache file.
type RemoteStore struct {
	url    string
	client *http.Client
	cache  *CacheFile
	logger *zap.Logger
}

// NewRemoteStore creates a store for the /data endpoint at url.
// client may be nil to use a default client; cache may be nil.
func NewRemoteStore(url string, client *http.Client, cache *CacheFile, logger *zap.Logger) *RemoteStore {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RemoteStore{url: url, client: client, cache: cache, logger: logger}
}

// Mode implements Store.
func (s *RemoteStore) Mode() string { return "remote" }

// URL returns the remote endpoint.
func (s *RemoteStore) URL() string { return s.url }

// Load implements Store.
func (s *RemoteStore) Load(ctx context.Context) Loaded {
	doc, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("remote content load failed, falling back",
			zap.String("url", s.url),
			zap.Error(err))
		return fallback(s.cache, s.logger)
	}
	mirror(s.cache, doc, s.logger)
	return Loaded{Doc: doc, Source: SourceRemote}
}

func (s *RemoteStore) fetch(ctx context.Context) (models.ContentDocument, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Remote(), s.logger, "remote content load")
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return models.ContentDocument{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return models.ContentDocument{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	if err != nil {
		return models.ContentDocument{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.ContentDocument{}, fmt.Errorf("remote returned %s", resp.Status)
	}

	doc, issues, err := contentdoc.Decode(body)
	if err != nil {
		return models.ContentDocument{}, err
	}
	logIssues(s.logger, SourceRemote, issues)
	return doc, nil
}

// postBody is the request body accepted by the /data endpoint.
type postBody struct {
	Password string                  `json:"password"`
	Action   string                  `json:"action,omitempty"`
	Data     *models.ContentDocument `json:"data,omitempty"`
}

// replyBody covers both the success and the error replies of /data.
type replyBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Save implements Store.
func (s *RemoteStore) Save(ctx context.Context, doc *models.ContentDocument, credential string) SaveResult {
	res := s.post(ctx, postBody{Password: credential, Data: withListsPtr(doc)})
	if res.OK && doc != nil {
		mirror(s.cache, *doc, s.logger)
	}
	return res
}

// Verify implements Store.
func (s *RemoteStore) Verify(ctx context.Context, credential string) SaveResult {
	return s.post(ctx, postBody{Password: credential, Action: "verify"})
}

func (s *RemoteStore) post(ctx context.Context, body postBody) SaveResult {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Remote(), s.logger, "remote content post")
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return failed(ReasonUnknown, err.Error())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return failed(ReasonUnknown, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("remote content post failed",
			zap.String("url", s.url),
			zap.String("action", body.Action),
			zap.Error(err))
		return failed(ReasonStorageUnavailable, err.Error())
	}
	defer resp.Body.Close()

	var reply replyBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	_ = json.Unmarshal(raw, &reply)

	msg := reply.Message
	if msg == "" {
		msg = reply.Error
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return saved("")
	case resp.StatusCode == http.StatusUnauthorized:
		return failed(ReasonUnauthorized, msg)
	case resp.StatusCode == http.StatusBadRequest:
		return failed(ReasonNoData, msg)
	case resp.StatusCode == http.StatusRequestEntityTooLarge, resp.StatusCode == http.StatusInsufficientStorage:
		return failed(ReasonQuotaExceeded, msg)
	case resp.StatusCode == http.StatusServiceUnavailable, resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusGatewayTimeout:
		return failed(ReasonStorageUnavailable, msg)
	default:
		if msg == "" {
			msg = resp.Status
		}
		return failed(ReasonUnknown, msg)
	}
}

func withListsPtr(doc *models.ContentDocument) *models.ContentDocument {
	if doc == nil {
		return nil
	}
	d := *doc
	if d.Achievements == nil {
		d.Achievements = []models.Achievement{}
	}
	if d.Participation == nil {
		d.Participation = []models.Participation{}
	}
	if d.Videos == nil {
		d.Videos = []models.Video{}
	}
	return &d
}
