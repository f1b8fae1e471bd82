package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lumapanel/admin-api/internal/core/domain"
)

type stubIdentityRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Identity
	updateErr error
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{byID: make(map[string]*domain.Identity)}
}

func cloneIdentity(i *domain.Identity) *domain.Identity {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}

func (r *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == identity.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.byID[identity.ID] = cloneIdentity(identity)
	return cloneIdentity(identity), nil
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.byID[id]; ok {
		return cloneIdentity(i), nil
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.byID {
		if i.Email == email {
			return cloneIdentity(i), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	if update.DisplayName != nil {
		i.DisplayName = *update.DisplayName
	}
	if update.Bio != nil {
		i.Bio = *update.Bio
	}
	if update.AvatarURL != nil {
		i.AvatarURL = *update.AvatarURL
	}
	i.UpdatedAt = time.Now().UTC()
	return cloneIdentity(i), nil
}

func (r *stubIdentityRepo) ListAll(_ context.Context) ([]domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Identity, 0, len(r.byID))
	for _, i := range r.byID {
		out = append(out, *i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Email < out[b].Email })
	return out, nil
}

type stubRoleRepo struct {
	mu          sync.Mutex
	assignments map[string]time.Time // "id|role"
	assignErr   error
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{assignments: make(map[string]time.Time)}
}

func roleKey(identityID, role string) string { return identityID + "|" + role }

func (r *stubRoleRepo) Assign(_ context.Context, identityID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.assignErr != nil {
		return r.assignErr
	}
	if _, ok := r.assignments[roleKey(identityID, role)]; !ok {
		r.assignments[roleKey(identityID, role)] = time.Now().UTC()
	}
	return nil
}

func (r *stubRoleRepo) Revoke(_ context.Context, identityID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.assignments, roleKey(identityID, role))
	return nil
}

func (r *stubRoleRepo) ListForIdentity(_ context.Context, identityID string) ([]domain.RoleAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RoleAssignment
	for key, at := range r.assignments {
		parts := strings.SplitN(key, "|", 2)
		if parts[0] == identityID {
			out = append(out, domain.RoleAssignment{IdentityID: parts[0], Role: parts[1], CreatedAt: at})
		}
	}
	return out, nil
}

func (r *stubRoleRepo) HasRole(_ context.Context, identityID, role string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.assignments[roleKey(identityID, role)]
	return ok, nil
}

func (r *stubRoleRepo) ListAll(_ context.Context) ([]domain.RoleAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RoleAssignment
	for key, at := range r.assignments {
		parts := strings.SplitN(key, "|", 2)
		out = append(out, domain.RoleAssignment{IdentityID: parts[0], Role: parts[1], CreatedAt: at})
	}
	return out, nil
}

func TestAuthService_SignUp_TokenResolvesBack(t *testing.T) {
	identities := newStubIdentityRepo()
	roles := newStubRoleRepo()
	svc := NewAuthService(identities, roles, "secret", time.Hour)

	created, token, err := svc.SignUp(context.Background(), "Alice@Example.com", "password123", "Alice")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if created.Email != "alice@example.com" {
		t.Fatalf("expected lower-cased email, got %q", created.Email)
	}
	if created.PasswordHash == "password123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	resolved, err := svc.CurrentIdentity(context.Background(), token)
	if err != nil {
		t.Fatalf("CurrentIdentity returned error: %v", err)
	}
	if resolved.Email != created.Email || resolved.ID != created.ID {
		t.Fatalf("token resolved to wrong identity: %+v", resolved)
	}
}

func TestAuthService_SignUp_AssignsUserRoleOnly(t *testing.T) {
	identities := newStubIdentityRepo()
	roles := newStubRoleRepo()
	svc := NewAuthService(identities, roles, "secret", time.Hour)

	created, _, err := svc.SignUp(context.Background(), "a@x.com", "password123", "")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}

	got, err := roles.ListForIdentity(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("ListForIdentity: %v", err)
	}
	if len(got) != 1 || got[0].Role != domain.RoleUser {
		t.Fatalf("expected exactly the user role, got %+v", got)
	}
}

func TestAuthService_SignUp_Validation(t *testing.T) {
	svc := NewAuthService(newStubIdentityRepo(), newStubRoleRepo(), "secret", time.Hour)

	if _, _, err := svc.SignUp(context.Background(), "not-an-email", "password123", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for malformed email, got %v", err)
	}
	if _, _, err := svc.SignUp(context.Background(), "a@x.com", "short", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for short password, got %v", err)
	}
	if _, _, err := svc.SignUp(context.Background(), "a@x.com", "password123", strings.Repeat("n", 101)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for long display name, got %v", err)
	}
}

func TestAuthService_SignUp_DuplicateLeavesFirstIntact(t *testing.T) {
	identities := newStubIdentityRepo()
	roles := newStubRoleRepo()
	svc := NewAuthService(identities, roles, "secret", time.Hour)

	first, _, err := svc.SignUp(context.Background(), "bob@x.com", "password123", "Bob")
	if err != nil {
		t.Fatalf("first SignUp failed: %v", err)
	}

	if _, _, err := svc.SignUp(context.Background(), "bob@x.com", "different1", "Eve"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	stored, err := identities.FindByID(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("first identity gone: %v", err)
	}
	if stored.DisplayName != "Bob" {
		t.Fatalf("first identity mutated: %+v", stored)
	}
}

func TestAuthService_SignIn_Success(t *testing.T) {
	identities := newStubIdentityRepo()
	roles := newStubRoleRepo()
	svc := NewAuthService(identities, roles, "secret", time.Hour)

	if _, _, err := svc.SignUp(context.Background(), "a@x.com", "password123", ""); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	identity, token, err := svc.SignIn(context.Background(), "a@x.com", "password123")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if token == "" || identity.Email != "a@x.com" {
		t.Fatalf("unexpected sign-in result: %+v token=%q", identity, token)
	}

	got, err := roles.ListForIdentity(context.Background(), identity.ID)
	if err != nil {
		t.Fatalf("ListForIdentity: %v", err)
	}
	if len(got) != 1 || got[0].Role != domain.RoleUser {
		t.Fatalf("expected only the user role after sign-up, got %+v", got)
	}
}

func TestAuthService_SignIn_InvalidCredentials(t *testing.T) {
	identities := newStubIdentityRepo()
	svc := NewAuthService(identities, newStubRoleRepo(), "secret", time.Hour)

	_, _, _ = svc.SignUp(context.Background(), "dave@x.com", "goodpass1", "")

	// Unknown email and wrong password must be indistinguishable.
	if _, _, err := svc.SignIn(context.Background(), "ghost@x.com", "whatever1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, _, err := svc.SignIn(context.Background(), "dave@x.com", "badpass12"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestAuthService_CurrentIdentity_TamperedToken(t *testing.T) {
	identities := newStubIdentityRepo()
	svc := NewAuthService(identities, newStubRoleRepo(), "secret", time.Hour)

	_, token, err := svc.SignUp(context.Background(), "a@x.com", "password123", "")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	// Flip one byte in the signature segment.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	if _, err := svc.CurrentIdentity(context.Background(), string(tampered)); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestAuthService_CurrentIdentity_ExpiredToken(t *testing.T) {
	identities := newStubIdentityRepo()
	roles := newStubRoleRepo()
	svc := NewAuthService(identities, roles, "secret", time.Hour)

	// Issue through a service whose TTL is already in the past.
	expired := &AuthService{identities: identities, roles: roles, jwtSecret: "secret", tokenTTL: -time.Minute}
	_, token, err := expired.SignUp(context.Background(), "late@x.com", "password123", "")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	if _, err := svc.CurrentIdentity(context.Background(), token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthService_CurrentIdentity_DeletedIdentity(t *testing.T) {
	identities := newStubIdentityRepo()
	svc := NewAuthService(identities, newStubRoleRepo(), "secret", time.Hour)

	created, token, err := svc.SignUp(context.Background(), "gone@x.com", "password123", "")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	identities.mu.Lock()
	delete(identities.byID, created.ID)
	identities.mu.Unlock()

	if _, err := svc.CurrentIdentity(context.Background(), token); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}
