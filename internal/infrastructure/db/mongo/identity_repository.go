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

const identityCollection = "identities"

// MongoIdentityRepository persists identities together with their credential
// hash. The hash never leaves this layer except inside domain.Identity, which
// excludes it from JSON.
type MongoIdentityRepository struct {
	coll *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *MongoIdentityRepository {
	return &MongoIdentityRepository{coll: db.Collection(identityCollection)}
}

type mongoIdentity struct {
	ID           string `bson:"_id"`
	Email        string `bson:"email"`
	DisplayName  string `bson:"display_name,omitempty"`
	Bio          string `bson:"bio,omitempty"`
	AvatarURL    string `bson:"avatar_url,omitempty"`
	PasswordHash string `bson:"password_hash"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func toMongoIdentity(i *domain.Identity) mongoIdentity {
	return mongoIdentity{
		ID:           i.ID,
		Email:        i.Email,
		DisplayName:  i.DisplayName,
		Bio:          i.Bio,
		AvatarURL:    i.AvatarURL,
		PasswordHash: i.PasswordHash,
		CreatedAt:    i.CreatedAt.Unix(),
		UpdatedAt:    i.UpdatedAt.Unix(),
	}
}

func (m mongoIdentity) toDomain() *domain.Identity {
	return &domain.Identity{
		ID:           m.ID,
		Email:        m.Email,
		DisplayName:  m.DisplayName,
		Bio:          m.Bio,
		AvatarURL:    m.AvatarURL,
		PasswordHash: m.PasswordHash,
		CreatedAt:    unixToTime(m.CreatedAt),
		UpdatedAt:    unixToTime(m.UpdatedAt),
	}
}

func (r *MongoIdentityRepository) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	_, err := r.coll.InsertOne(ctx, toMongoIdentity(identity))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}
	return identity, nil
}

func (r *MongoIdentityRepository) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoIdentityRepository) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoIdentityRepository) findOne(ctx context.Context, filter bson.M) (*domain.Identity, error) {
	var mi mongoIdentity
	if err := r.coll.FindOne(ctx, filter).Decode(&mi); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return mi.toDomain(), nil
}

// UpdateProfile sets only the non-nil fields of update, leaving the rest of
// the document untouched, and returns the post-update record.
func (r *MongoIdentityRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Identity, error) {
	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if update.DisplayName != nil {
		set["display_name"] = *update.DisplayName
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.AvatarURL != nil {
		set["avatar_url"] = *update.AvatarURL
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mi mongoIdentity
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&mi)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("update identity: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *MongoIdentityRepository) ListAll(ctx context.Context) ([]domain.Identity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Identity
	for cursor.Next(ctx) {
		var mi mongoIdentity
		if err := cursor.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode identity: %w", err)
		}
		out = append(out, *mi.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate identities: %w", err)
	}
	return out, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
