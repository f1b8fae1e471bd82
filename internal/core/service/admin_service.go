package service

import (
	"context"
	"fmt"

	"github.com/lumapanel/admin-api/internal/core/domain"
	"github.com/lumapanel/admin-api/internal/core/ports"
)

// AdminService backs the user-management screens: listing every identity with
// its roles and bulk role assignment/revocation.
type AdminService struct {
	identities ports.IdentityRepository
	roles      ports.RoleRepository
}

func NewAdminService(identities ports.IdentityRepository, roles ports.RoleRepository) *AdminService {
	return &AdminService{identities: identities, roles: roles}
}

// ListIdentities joins all identities with their role assignments.
func (s *AdminService) ListIdentities(ctx context.Context) ([]domain.IdentityWithRoles, error) {
	identities, err := s.identities.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.roles.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byIdentity := make(map[string][]string, len(identities))
	for _, a := range assignments {
		byIdentity[a.IdentityID] = append(byIdentity[a.IdentityID], a.Role)
	}

	result := make([]domain.IdentityWithRoles, 0, len(identities))
	for _, id := range identities {
		roles := byIdentity[id.ID]
		if roles == nil {
			roles = []string{}
		}
		result = append(result, domain.IdentityWithRoles{Identity: id, Roles: roles})
	}
	return result, nil
}

// BulkAssignRole upserts (id, role) for every id in the set. Applied one id
// at a time; not atomic across the set.
func (s *AdminService) BulkAssignRole(ctx context.Context, identityIDs []string, role string) error {
	if !domain.ValidRole(role) || len(identityIDs) == 0 {
		return domain.ErrValidation
	}
	for _, id := range identityIDs {
		if err := s.roles.Assign(ctx, id, role); err != nil {
			return fmt.Errorf("assign role %s to %s: %w", role, id, err)
		}
	}
	return nil
}

// BulkRevokeRole deletes (id, role) for every id in the set. Revoking a role
// the identity does not hold is a no-op. An admin may revoke their own admin
// role; the gate re-checks on the next request.
func (s *AdminService) BulkRevokeRole(ctx context.Context, identityIDs []string, role string) error {
	if !domain.ValidRole(role) || len(identityIDs) == 0 {
		return domain.ErrValidation
	}
	for _, id := range identityIDs {
		if err := s.roles.Revoke(ctx, id, role); err != nil {
			return fmt.Errorf("revoke role %s from %s: %w", role, id, err)
		}
	}
	return nil
}
