package ports

import (
	"context"

	"github.com/lumapanel/admin-api/internal/core/domain"
)

// RoleRepository persists (identity, role) assignments. Assign is an upsert
// on the unique pair; assigning an already-held role refreshes nothing and
// returns no error.
type RoleRepository interface {
	Assign(ctx context.Context, identityID, role string) error
	Revoke(ctx context.Context, identityID, role string) error
	ListForIdentity(ctx context.Context, identityID string) ([]domain.RoleAssignment, error)
	HasRole(ctx context.Context, identityID, role string) (bool, error)
	ListAll(ctx context.Context) ([]domain.RoleAssignment, error)
}
