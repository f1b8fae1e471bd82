package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumapanel/admin-api/internal/core/domain"
)

// EnsureAdminUser seeds the very first admin identity from out-of-band
// credentials. The admin role is otherwise only grantable by an existing
// admin, so a fresh deployment needs this bootstrap. No-op when the email is
// already registered or the credentials are unset.
func EnsureAdminUser(ctx context.Context, db *mongo.Database, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	identities := NewIdentityRepository(db)
	roles := NewRoleRepository(db)

	existing, err := identities.FindByEmail(ctx, email)
	if err == nil {
		// Identity exists; make sure it holds admin.
		return roles.Assign(ctx, existing.ID, domain.RoleAdmin)
	}
	if !errors.Is(err, domain.ErrIdentityNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	created, err := identities.Create(ctx, &domain.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  "Administrator",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	if err := roles.Assign(ctx, created.ID, domain.RoleUser); err != nil {
		return err
	}
	return roles.Assign(ctx, created.ID, domain.RoleAdmin)
}
