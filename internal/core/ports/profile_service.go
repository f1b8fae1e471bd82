package ports

import (
	"context"

	"github.com/lumapanel/admin-api/internal/core/domain"
)

type ProfileService interface {
	GetProfile(ctx context.Context, identityID string) (*domain.Identity, error)
	UpdateProfile(ctx context.Context, identityID string, update domain.ProfileUpdate) (*domain.Identity, error)
	ListRoles(ctx context.Context, identityID string) ([]domain.RoleAssignment, error)
}
