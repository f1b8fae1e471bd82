package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumapanel/admin-api/internal/core/domain"
	"github.com/lumapanel/admin-api/internal/core/ports"
)

// ProfileHandler serves the caller's own profile and role list.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /profiles/me.
//
// @Summary      Get own profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /profiles/me [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	identityID, err := ctxIdentityID(c)
	if err != nil {
		return err
	}

	identity, err := h.service.GetProfile(c.Request().Context(), identityID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(identity))
}

// Update handles PUT /profiles/me. Fields absent from the body are left
// unchanged; present fields are validated against the server-side bounds.
//
// @Summary      Update own profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Router       /profiles/me [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	identityID, err := ctxIdentityID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.service.UpdateProfile(c.Request().Context(), identityID, domain.ProfileUpdate{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(identity))
}

// Roles handles GET /profiles/me/roles.
//
// @Summary      List own roles
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  roleResponse
// @Router       /profiles/me/roles [get]
func (h *ProfileHandler) Roles(c echo.Context) error {
	identityID, err := ctxIdentityID(c)
	if err != nil {
		return err
	}

	assignments, err := h.service.ListRoles(c.Request().Context(), identityID)
	if err != nil {
		return err
	}

	out := make([]roleResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, roleResponse{Role: a.Role, CreatedAt: a.CreatedAt})
	}
	return c.JSON(http.StatusOK, out)
}
