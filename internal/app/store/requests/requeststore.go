// internal/app/store/requests/requeststore.go
package requeststore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/studysphere/internal/app/system/status"
	"github.com/dalemusser/studysphere/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound = errors.New("request not found")
	// ErrValidation wraps create-time field problems.
	ErrValidation = errors.New("invalid request")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("requests")}
}

// Create inserts a new pending request. Title is required; requests carry no
// requester identity.
func (s *Store) Create(ctx context.Context, title, details string) (models.ResourceRequest, error) {
	if strings.TrimSpace(title) == "" {
		return models.ResourceRequest{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	req := models.ResourceRequest{
		ID:        primitive.NewObjectID().Hex(),
		Title:     title,
		Details:   details,
		Status:    status.Pending,
		CreatedAt: time.Now().UTC().UnixMilli(),
	}
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		return models.ResourceRequest{}, err
	}
	return req, nil
}

// SetStatus overwrites a request's status (last writer wins; only admins
// flip these).
func (s *Store) SetStatus(ctx context.Context, id, st string) error {
	if !status.IsValid(st) {
		return fmt.Errorf("%w: status must be %q or %q", ErrValidation, status.Pending, status.Completed)
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": st}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a request.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every request, newest first.
func (s *Store) List(ctx context.Context) ([]models.ResourceRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ResourceRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
