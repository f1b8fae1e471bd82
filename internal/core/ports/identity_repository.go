package ports

import (
	"context"

	"github.com/lumapanel/admin-api/internal/core/domain"
)

// IdentityRepository defines persistence for identities and their credential.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	// UpdateProfile applies a partial update: nil fields are not touched.
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Identity, error)
	ListAll(ctx context.Context) ([]domain.Identity, error)
}
