package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/studysphere/internal/app/system/status"
	"github.com/dalemusser/studysphere/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateResource inserts a resource with sensible defaults, applying mut (if
// any) before the write. Returns the stored record.
func (f *Fixtures) CreateResource(ctx context.Context, title string, mut func(*models.Resource)) models.Resource {
	f.t.Helper()

	r := models.Resource{
		ID:       primitive.NewObjectID().Hex(),
		Title:    title,
		Type:     models.ResourceTypePDF,
		URL:      "https://example.com/" + primitive.NewObjectID().Hex() + ".pdf",
		Category: "General",
		AddedAt:  time.Now().UTC().UnixMilli(),
	}
	if mut != nil {
		mut(&r)
	}
	r.TitleCI = text.Fold(r.Title)
	r.DescriptionCI = text.Fold(r.Description)

	if _, err := f.db.Collection("resources").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test resource: %v", err)
	}
	return r
}

// CreateRequest inserts a pending resource request.
func (f *Fixtures) CreateRequest(ctx context.Context, title, details string) models.ResourceRequest {
	f.t.Helper()

	req := models.ResourceRequest{
		ID:        primitive.NewObjectID().Hex(),
		Title:     title,
		Details:   details,
		Status:    status.Pending,
		CreatedAt: time.Now().UTC().UnixMilli(),
	}
	if _, err := f.db.Collection("requests").InsertOne(ctx, req); err != nil {
		f.t.Fatalf("failed to create test request: %v", err)
	}
	return req
}

// CreatePresence inserts a presence record with the given last-seen time.
func (f *Fixtures) CreatePresence(ctx context.Context, clientID string, lastSeen time.Time) models.Presence {
	f.t.Helper()

	p := models.Presence{ID: clientID, LastSeen: lastSeen}
	if _, err := f.db.Collection("presence").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test presence record: %v", err)
	}
	return p
}
