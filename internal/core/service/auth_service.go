package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumapanel/admin-api/internal/core/domain"
	"github.com/lumapanel/admin-api/internal/core/ports"
)

const (
	minPasswordLength = 6
	maxDisplayNameLen = 100
	defaultTokenTTL   = 7 * 24 * time.Hour
)

// AuthService implements sign-up, sign-in, and token verification.
type AuthService struct {
	identities ports.IdentityRepository
	roles      ports.RoleRepository
	jwtSecret  string
	tokenTTL   time.Duration
}

func NewAuthService(identities ports.IdentityRepository, roles ports.RoleRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{identities: identities, roles: roles, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// SignUp creates an identity with a hashed credential and the default user
// role, then issues a token. The identity and role inserts are two separate
// writes; a crash between them leaves an identity without a role.
func (s *AuthService) SignUp(ctx context.Context, email, password, displayName string) (*domain.Identity, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", domain.ErrValidation
	}
	if len(password) < minPasswordLength {
		return nil, "", domain.ErrValidation
	}
	if len(displayName) > maxDisplayNameLen {
		return nil, "", domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.identities.Create(ctx, identity)
	if err != nil {
		return nil, "", err
	}

	if err := s.roles.Assign(ctx, created.ID, domain.RoleUser); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// SignIn verifies the credential and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Identity, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(identity)
	if err != nil {
		return nil, "", err
	}
	return identity, token, nil
}

// CurrentIdentity resolves a bearer token to its identity record.
func (s *AuthService) CurrentIdentity(ctx context.Context, token string) (*domain.Identity, error) {
	identityID, _, err := VerifyToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return s.identities.FindByID(ctx, identityID)
}

func (s *AuthService) issueToken(identity *domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":   identity.ID,
		"email": identity.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// VerifyToken checks signature, algorithm, and expiry, returning the embedded
// identity id and email. Any failure maps to ErrInvalidToken.
func VerifyToken(token, jwtSecret string) (identityID, email string, err error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", "", domain.ErrInvalidToken
	}

	identityID, _ = claims["sub"].(string)
	email, _ = claims["email"].(string)
	if identityID == "" {
		return "", "", domain.ErrInvalidToken
	}
	return identityID, email, nil
}
