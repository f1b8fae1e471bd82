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

const roleCollection = "role_assignments"

// MongoRoleRepository persists (identity_id, role) pairs, unique per pair.
type MongoRoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{coll: db.Collection(roleCollection)}
}

type mongoRoleAssignment struct {
	IdentityID string `bson:"identity_id"`
	Role       string `bson:"role"`
	CreatedAt  int64  `bson:"created_at"`
}

func (m mongoRoleAssignment) toDomain() domain.RoleAssignment {
	return domain.RoleAssignment{
		IdentityID: m.IdentityID,
		Role:       m.Role,
		CreatedAt:  unixToTime(m.CreatedAt),
	}
}

// Assign upserts the pair; assigning an already-held role is a no-op that
// keeps the original created_at.
func (r *MongoRoleRepository) Assign(ctx context.Context, identityID, role string) error {
	filter := bson.M{"identity_id": identityID, "role": role}
	update := bson.M{"$setOnInsert": bson.M{
		"identity_id": identityID,
		"role":        role,
		"created_at":  time.Now().UTC().Unix(),
	}}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// A concurrent upsert can race on the unique index; the pair exists
		// either way.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

// Revoke deletes the pair; revoking a role the identity does not hold is a
// no-op.
func (r *MongoRoleRepository) Revoke(ctx context.Context, identityID, role string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"identity_id": identityID, "role": role})
	if err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	return nil
}

func (r *MongoRoleRepository) ListForIdentity(ctx context.Context, identityID string) ([]domain.RoleAssignment, error) {
	return r.list(ctx, bson.M{"identity_id": identityID})
}

func (r *MongoRoleRepository) ListAll(ctx context.Context) ([]domain.RoleAssignment, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoRoleRepository) list(ctx context.Context, filter bson.M) ([]domain.RoleAssignment, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.RoleAssignment
	for cursor.Next(ctx) {
		var ma mongoRoleAssignment
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		out = append(out, ma.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	return out, nil
}

// HasRole is the admin gate's per-request lookup.
func (r *MongoRoleRepository) HasRole(ctx context.Context, identityID, role string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"identity_id": identityID, "role": role}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("role lookup: %w", err)
	}
	return true, nil
}
