// internal/app/store/resources/resourcestore.go
package resourcestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/studysphere/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Vote kinds accepted by Vote.
const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

var (
	// ErrNotFound is returned when the target resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrProtectedRecord is returned for delete/counter/pin attempts against
	// the seed records. Admins get this back as feedback rather than a
	// silent no-op.
	ErrProtectedRecord = errors.New("seed records cannot be modified")
	// ErrValidation wraps all create-time field problems.
	ErrValidation = errors.New("invalid resource")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("resources")}
}

// Create inserts a new Resource with a fresh id, folded search fields, and
// zeroed counters. It validates Title, Category, Type, and URL.
func (s *Store) Create(ctx context.Context, r models.Resource) (models.Resource, error) {
	if strings.TrimSpace(r.Title) == "" {
		return models.Resource{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(r.Category) == "" {
		return models.Resource{}, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if !models.IsValidResourceType(r.Type) {
		return models.Resource{}, fmt.Errorf("%w: type must be one of %s", ErrValidation, strings.Join(models.ResourceTypes, ", "))
	}
	if !urlutil.IsValidAbsHTTPURL(r.URL) {
		return models.Resource{}, fmt.Errorf("%w: url must be a valid http(s) URL", ErrValidation)
	}

	r.ID = primitive.NewObjectID().Hex()
	r.TitleCI = text.Fold(r.Title)
	r.DescriptionCI = text.Fold(r.Description)
	if r.AddedAt == 0 {
		r.AddedAt = time.Now().UTC().UnixMilli()
	}
	r.Likes, r.Dislikes, r.Views = 0, 0, 0
	r.Pinned = false

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Resource{}, err
	}
	return r, nil
}

// Delete removes a resource. Seed records are rejected.
func (s *Store) Delete(ctx context.Context, id string) error {
	if models.IsProtectedResourceID(id) {
		return ErrProtectedRecord
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPinned overwrites the pin flag unconditionally (last writer wins; only
// one admin is expected to curate pins).
func (s *Store) SetPinned(ctx context.Context, id string, pinned bool) error {
	if models.IsProtectedResourceID(id) {
		return ErrProtectedRecord
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"pinned": pinned}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Vote applies one like/dislike step as an atomic server-side increment, so
// concurrent voters never lose updates. retract undoes a previous vote;
// retracting below zero is a no-op rather than driving the counter negative.
func (s *Store) Vote(ctx context.Context, id, kind string, retract bool) error {
	if models.IsProtectedResourceID(id) {
		return ErrProtectedRecord
	}

	var field string
	switch kind {
	case VoteLike:
		field = "likes"
	case VoteDislike:
		field = "dislikes"
	default:
		return fmt.Errorf("%w: vote kind must be %q or %q", ErrValidation, VoteLike, VoteDislike)
	}

	filter := bson.M{"_id": id}
	delta := int64(1)
	if retract {
		delta = -1
		filter[field] = bson.M{"$gt": 0}
	}

	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if !retract {
			return ErrNotFound
		}
		// Counter already at zero, or the record is gone.
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// IncrementView bumps the view counter atomically.
func (s *Store) IncrementView(ctx context.Context, id string) error {
	if models.IsProtectedResourceID(id) {
		return ErrProtectedRecord
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a resource by its id.
func (s *Store) GetByID(ctx context.Context, id string) (models.Resource, error) {
	var r models.Resource
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Resource{}, ErrNotFound
	}
	if err != nil {
		return models.Resource{}, err
	}
	return r, nil
}

// List returns every resource, newest first. The watcher uses this for
// snapshots; admin listing reuses it.
func (s *Store) List(ctx context.Context) ([]models.Resource, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Resource
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureSeed upserts the two protected demo records. $setOnInsert keeps any
// live counters intact on restart.
func (s *Store) EnsureSeed(ctx context.Context) error {
	for _, r := range Seed() {
		_, err := s.c.UpdateOne(ctx,
			bson.M{"_id": r.ID},
			bson.M{"$setOnInsert": r},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
