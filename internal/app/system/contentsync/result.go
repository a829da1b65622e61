// internal/app/system/contentsync/result.go
package contentsync

import "errors"

// Reason categorizes a failed save.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonUnauthorized       Reason = "unauthorized"
	ReasonNoData             Reason = "no-data"
	ReasonStorageUnavailable Reason = "storage-unavailable"
	ReasonQuotaExceeded      Reason = "quota-exceeded"
	ReasonUnknown            Reason = "unknown"
)

// ErrNotConfigured is returned when a store is used without its required backend.
var ErrNotConfigured = errors.New("contentsync: store not configured")

// SaveResult reports the outcome of Save or Verify.
// Message carries the backend's own text when there is one.
type SaveResult struct {
	OK       bool
	Reason   Reason
	Message  string
	Revision string
}

func saved(rev string) SaveResult {
	return SaveResult{OK: true, Revision: rev}
}

func failed(reason Reason, msg string) SaveResult {
	return SaveResult{Reason: reason, Message: msg}
}

// Source identifies where a loaded document came from.
type Source string

const (
	SourceMongo    Source = "mongo"
	SourceRemote   Source = "remote"
	SourceCache    Source = "cache"
	SourceDefaults Source = "defaults"
	SourceSave     Source = "save"
	SourceWatcher  Source = "watcher"
)
