// internal/app/system/contentsync/cache.go
package contentsync

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dalemusser/stratascout/internal/app/system/contentdoc"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"github.com/natefinch/atomic"
)

// CacheFileName is the name of the cache file inside the cache directory.
const CacheFileName = "scoutGroupData.json"

// CacheFile is the local copy of the content document.
// Writes replace the file atomically so readers never see a partial document.
type CacheFile struct {
	path string
}

// NewCacheFile returns a cache file inside dir. The directory is not created.
func NewCacheFile(dir string) *CacheFile {
	return &CacheFile{path: filepath.Join(dir, CacheFileName)}
}

// Path returns the full path of the cache file.
func (c *CacheFile) Path() string { return c.path }

// Dir returns the directory holding the cache file.
func (c *CacheFile) Dir() string { return filepath.Dir(c.path) }

// Read decodes the cache file against the defaults.
func (c *CacheFile) Read() (models.ContentDocument, error) {
	doc, _, err := c.ReadWithIssues()
	return doc, err
}

// ReadWithIssues is Read plus the repairs made while decoding.
func (c *CacheFile) ReadWithIssues() (models.ContentDocument, []contentdoc.Issue, error) {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return models.DefaultContent(), nil, err
	}
	return contentdoc.Decode(b)
}

// Write replaces the cache file with doc.
func (c *CacheFile) Write(doc models.ContentDocument) error {
	b, err := contentdoc.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		return fmt.Errorf("cache directory: %w", err)
	}
	if err := atomic.WriteFile(c.path, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// ClassifyWriteError maps a cache write error onto a save failure reason.
//
// The atomic writer formats some underlying errors as text, so errno values
// are matched both with errors.Is and by message.
func ClassifyWriteError(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	switch {
	case matches(err, syscall.ENOSPC), matches(err, syscall.EDQUOT):
		return ReasonQuotaExceeded
	case errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrNotExist),
		matches(err, syscall.EACCES), matches(err, syscall.EPERM),
		matches(err, syscall.EROFS), matches(err, syscall.ENOENT):
		return ReasonStorageUnavailable
	default:
		return ReasonUnknown
	}
}

func matches(err error, errno syscall.Errno) bool {
	return errors.Is(err, errno) || strings.Contains(err.Error(), errno.Error())
}
