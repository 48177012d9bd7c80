// internal/app/store/presence/presencestore.go
package presencestore

import (
	"context"

	"github.com/dalemusser/studysphere/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("presence")}
}

// Heartbeat upserts the client's presence record with a server-assigned
// last_seen. $currentDate resolves on the server at write time, so clients
// with wrong clocks cannot place themselves outside (or permanently inside)
// the active window.
func (s *Store) Heartbeat(ctx context.Context, clientID string) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": clientID},
		bson.M{"$currentDate": bson.M{"last_seen": true}},
		options.Update().SetUpsert(true),
	)
	return err
}

// All returns every presence record ever written. The live count aggregator
// filters these against the active window itself; records are deliberately
// never expired here (see the liveness package).
func (s *Store) All(ctx context.Context) ([]models.Presence, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Presence
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
