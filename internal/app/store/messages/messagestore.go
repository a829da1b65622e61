package messagestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/stratascout/internal/app/store/storeutil"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the collection holding contact form submissions.
const CollectionName = "contact_messages"

// ErrNotFound is returned when a message does not exist.
var ErrNotFound = errors.New("contact message not found")

// Store provides access to the contact_messages collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new message store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// Create inserts a new unread message and returns it with its ID set.
func (s *Store) Create(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	m.ID = primitive.NewObjectID()
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.Read = false
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.ContactMessage{}, err
	}
	return m, nil
}

// List returns messages newest first. unreadOnly restricts to unread messages.
func (s *Store) List(ctx context.Context, unreadOnly bool, limit, page int64) ([]models.ContactMessage, error) {
	filter := bson.M{}
	if unreadOnly {
		filter["read"] = false
	}
	cur, err := s.c.Find(ctx, filter, storeutil.Paginate(limit, page))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.ContactMessage{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountUnread returns the number of unread messages.
func (s *Store) CountUnread(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"read": false})
}

// Get returns a single message by ID.
func (s *Store) Get(ctx context.Context, id primitive.ObjectID) (models.ContactMessage, error) {
	var m models.ContactMessage
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return models.ContactMessage{}, ErrNotFound
	}
	return m, err
}

// MarkRead sets the read flag on a message.
func (s *Store) MarkRead(ctx context.Context, id primitive.ObjectID, read bool) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": read}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a message.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReadBefore removes read messages created before cutoff and returns how many were removed.
func (s *Store) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"read": true, "created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
