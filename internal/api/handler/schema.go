package handler

import (
	"time"

	"github.com/lumapanel/admin-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type signupRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=6"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

// userResponse is the outward identity shape. The password hash never appears
// here; the mapping is explicit so persistence changes cannot leak fields.
type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toUserResponse(i *domain.Identity) *userResponse {
	if i == nil {
		return nil
	}
	return &userResponse{
		ID:          i.ID,
		Email:       i.Email,
		DisplayName: i.DisplayName,
		Bio:         i.Bio,
		AvatarURL:   i.AvatarURL,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// --- Profile ---

// updateProfileRequest uses pointers so an omitted field is distinguishable
// from an explicitly empty one: omitted fields keep their stored value.
type updateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=255"`
	Bio         *string `json:"bio"          validate:"omitempty,max=5000"`
	AvatarURL   *string `json:"avatar_url"`
}

type roleResponse struct {
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Theme ---

type updateThemeRequest struct {
	Config map[string]string `json:"config" validate:"required,min=1"`
}

// --- Admin / user management ---

type identityWithRolesResponse struct {
	User  *userResponse `json:"user"`
	Roles []string      `json:"roles"`
}

type bulkRoleRequest struct {
	IdentityIDs []string `json:"identity_ids" validate:"required,min=1,dive,required"`
	Role        string   `json:"role"         validate:"required,oneof=admin user"`
}

// --- Upload ---

type uploadResponse struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}
