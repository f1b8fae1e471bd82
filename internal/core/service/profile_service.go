package service

import (
	"context"
	"net/url"

	"github.com/lumapanel/admin-api/internal/core/domain"
	"github.com/lumapanel/admin-api/internal/core/ports"
)

// Server-side bounds. The UI enforces tighter limits; these are authoritative.
const (
	maxProfileDisplayName = 255
	maxProfileBio         = 5000
)

// ProfileService reads and partially updates the caller's own profile.
type ProfileService struct {
	identities ports.IdentityRepository
	roles      ports.RoleRepository
}

func NewProfileService(identities ports.IdentityRepository, roles ports.RoleRepository) *ProfileService {
	return &ProfileService{identities: identities, roles: roles}
}

func (s *ProfileService) GetProfile(ctx context.Context, identityID string) (*domain.Identity, error) {
	return s.identities.FindByID(ctx, identityID)
}

// UpdateProfile applies the non-nil fields of update. Omitted fields keep
// their stored values.
func (s *ProfileService) UpdateProfile(ctx context.Context, identityID string, update domain.ProfileUpdate) (*domain.Identity, error) {
	if update.DisplayName != nil && len(*update.DisplayName) > maxProfileDisplayName {
		return nil, domain.ErrValidation
	}
	if update.Bio != nil && len(*update.Bio) > maxProfileBio {
		return nil, domain.ErrValidation
	}
	if update.AvatarURL != nil && *update.AvatarURL != "" {
		u, err := url.Parse(*update.AvatarURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return nil, domain.ErrValidation
		}
	}
	return s.identities.UpdateProfile(ctx, identityID, update)
}

func (s *ProfileService) ListRoles(ctx context.Context, identityID string) ([]domain.RoleAssignment, error) {
	return s.roles.ListForIdentity(ctx, identityID)
}
