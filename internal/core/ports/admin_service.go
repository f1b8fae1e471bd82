package ports

import (
	"context"

	"github.com/lumapanel/admin-api/internal/core/domain"
)

type AdminService interface {
	ListIdentities(ctx context.Context) ([]domain.IdentityWithRoles, error)
	// BulkAssignRole / BulkRevokeRole apply the change per identity; the
	// set is not atomic, so a mid-set failure leaves earlier ids applied.
	BulkAssignRole(ctx context.Context, identityIDs []string, role string) error
	BulkRevokeRole(ctx context.Context, identityIDs []string, role string) error
}
