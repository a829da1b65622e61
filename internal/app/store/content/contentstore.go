// internal/app/store/content/contentstore.go
package contentstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/stratascout/internal/app/system/contentdoc"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the collection holding the singleton content record.
const CollectionName = "site_content"

// ErrNotFound is returned by Find when the content record has not been created yet.
var ErrNotFound = errors.New("content document not found")

// record is the stored shape of the singleton content document. Content is
// kept raw on read so missing keys can be told apart from empty ones.
type record struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Singleton bool               `bson:"singleton"`
	Revision  string             `bson:"revision"`
	Content   bson.Raw           `bson:"content"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Snapshot is a content document together with its revision metadata.
type Snapshot struct {
	Doc       models.ContentDocument
	Revision  string
	UpdatedAt time.Time
}

// Store provides access to the site_content collection.
// There is only ever one content document per site.
type Store struct {
	c *mongo.Collection
}

// New creates a new content store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

func singletonFilter() bson.M {
	return bson.M{"singleton": true}
}

// Find returns the stored document, or ErrNotFound.
// Keys missing from the stored record are backfilled from the defaults, nil
// lists are defaulted and ids repaired.
func (s *Store) Find(ctx context.Context) (Snapshot, error) {
	var rec record
	err := s.c.FindOne(ctx, singletonFilter()).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}
	doc, err := fromRaw(rec.Content)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode content: %w", err)
	}
	return Snapshot{Doc: doc, Revision: rec.Revision, UpdatedAt: rec.UpdatedAt}, nil
}

// fromRaw decodes a stored content subdocument and backfills whatever it
// lacks. An empty or absent subdocument yields the defaults.
func fromRaw(raw bson.Raw) (models.ContentDocument, error) {
	var doc models.ContentDocument
	if len(raw) > 0 {
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return models.ContentDocument{}, err
		}
	}
	doc, _ = contentdoc.Backfill(doc, func(section, key string) bool {
		if len(raw) == 0 {
			return false
		}
		v, err := raw.LookupErr(section, key)
		return err == nil && v.Type != bson.TypeNull
	})
	return doc, nil
}

// Get returns the stored document, creating it from the defaults on first access.
func (s *Store) Get(ctx context.Context) (Snapshot, error) {
	snap, err := s.Find(ctx)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Snapshot{}, err
	}
	if _, err := s.Initialize(ctx, models.DefaultContent()); err != nil {
		return Snapshot{}, err
	}
	return s.Find(ctx)
}

// Initialize inserts doc only if no content record exists yet.
// It reports whether a new record was created.
func (s *Store) Initialize(ctx context.Context, doc models.ContentDocument) (bool, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"singleton":  true,
			"revision":   uuid.NewString(),
			"content":    withLists(doc),
			"updated_at": now,
		},
	}
	res, err := s.c.UpdateOne(ctx, singletonFilter(), update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// Replace overwrites the whole document and returns the new revision.
func (s *Store) Replace(ctx context.Context, doc models.ContentDocument) (string, error) {
	rev := uuid.NewString()
	update := bson.M{
		"$set": bson.M{
			"singleton":  true,
			"revision":   rev,
			"content":    withLists(doc),
			"updated_at": time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
		},
	}
	if _, err := s.c.UpdateOne(ctx, singletonFilter(), update, options.Update().SetUpsert(true)); err != nil {
		return "", err
	}
	return rev, nil
}

// withLists stores empty lists as arrays rather than null.
func withLists(doc models.ContentDocument) models.ContentDocument {
	if doc.Achievements == nil {
		doc.Achievements = []models.Achievement{}
	}
	if doc.Participation == nil {
		doc.Participation = []models.Participation{}
	}
	if doc.Videos == nil {
		doc.Videos = []models.Video{}
	}
	return doc
}
