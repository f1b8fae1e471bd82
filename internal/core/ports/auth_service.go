package ports

import (
	"context"

	"github.com/lumapanel/admin-api/internal/core/domain"
)

type AuthService interface {
	SignUp(ctx context.Context, email, password, displayName string) (*domain.Identity, string, error)
	SignIn(ctx context.Context, email, password string) (*domain.Identity, string, error)
	CurrentIdentity(ctx context.Context, token string) (*domain.Identity, error)
}
