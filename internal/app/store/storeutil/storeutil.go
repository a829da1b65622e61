// internal/app/store/storeutil/storeutil.go
// Package storeutil holds the find options shared by the inbox and activity
// stores, which both list records newest first.
package storeutil

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultPageSize applies when a caller passes no limit.
	DefaultPageSize int64 = 20
	// MaxPageSize bounds a single listing.
	MaxPageSize int64 = 500
)

// NewestFirst orders by creation time, ties broken by _id.
func NewestFirst() bson.D {
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
}

// Window returns newest-first options for limit records after skipping
// offset. A non-positive limit uses def; limits above MaxPageSize are capped.
func Window(limit, offset, def int64) *options.FindOptions {
	if limit <= 0 {
		limit = def
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return options.Find().SetSort(NewestFirst()).SetLimit(limit).SetSkip(offset)
}

// Paginate returns newest-first options for a 1-based page.
func Paginate(limit, page int64) *options.FindOptions {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return Window(limit, (page-1)*limit, DefaultPageSize)
}
