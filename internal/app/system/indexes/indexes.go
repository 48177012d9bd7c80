// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent
(CreateMany is a no-op for indexes that already exist). Errors are
aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureResources(ctx, db); err != nil {
		problems = append(problems, "resources: "+err.Error())
	}
	if err := ensureRequests(ctx, db); err != nil {
		problems = append(problems, "requests: "+err.Error())
	}
	if err := ensurePresence(ctx, db); err != nil {
		problems = append(problems, "presence: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// resources: the watcher reads the full collection ordered by added_at, and
// the admin list filters by category.
func ensureResources(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("resources").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "added_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	return err
}

// requests: listed newest-first.
func ensureRequests(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("requests").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}

// presence: last_seen supports inspecting recent records; the live count
// itself scans the whole collection on purpose.
func ensurePresence(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("presence").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "last_seen", Value: -1}}},
	})
	return err
}
