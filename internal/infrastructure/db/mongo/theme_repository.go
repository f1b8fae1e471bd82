package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lumapanel/admin-api/internal/core/domain"
)

const themeCollection = "theme_config"

// MongoThemeRepository persists the globally shared theme configuration,
// one document per key.
type MongoThemeRepository struct {
	coll *mongo.Collection
}

func NewThemeRepository(db *mongo.Database) *MongoThemeRepository {
	return &MongoThemeRepository{coll: db.Collection(themeCollection)}
}

type mongoThemeEntry struct {
	Key       string `bson:"_id"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *MongoThemeRepository) List(ctx context.Context) ([]domain.ThemeEntry, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list theme entries: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.ThemeEntry
	for cursor.Next(ctx) {
		var me mongoThemeEntry
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode theme entry: %w", err)
		}
		out = append(out, domain.ThemeEntry{
			Key:       me.Key,
			Value:     me.Value,
			UpdatedAt: unixToTime(me.UpdatedAt),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate theme entries: %w", err)
	}
	return out, nil
}

// Upsert inserts the key or overwrites its value and refreshes the timestamp.
func (r *MongoThemeRepository) Upsert(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{
		"value":      value,
		"updated_at": time.Now().UTC().Unix(),
	}}

	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert theme entry: %w", err)
	}
	return nil
}
