package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether r is a recognized role name.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// Identity models a registered account. The password hash lives alongside it
// in persistence but is never serialized outward.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleAssignment grants an identity membership in a role. The
// (identity_id, role) pair is unique; an identity may hold several roles.
type RoleAssignment struct {
	IdentityID string    `json:"identity_id"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

// IdentityWithRoles is the admin listing shape: an identity joined with
// every role it currently holds.
type IdentityWithRoles struct {
	Identity Identity `json:"user"`
	Roles    []string `json:"roles"`
}

// ProfileUpdate carries a partial profile mutation. Nil fields are left
// untouched by the update.
type ProfileUpdate struct {
	DisplayName *string
	Bio         *string
	AvatarURL   *string
}
