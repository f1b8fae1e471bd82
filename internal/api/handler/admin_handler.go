package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumapanel/admin-api/internal/api/metrics"
	"github.com/lumapanel/admin-api/internal/core/ports"
)

// AdminHandler backs the user-management screens. Every route is mounted
// behind both the Auth and RequireAdmin gates.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListIdentities handles GET /admin/identities.
//
// @Summary      List all identities with their roles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   identityWithRolesResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/identities [get]
func (h *AdminHandler) ListIdentities(c echo.Context) error {
	identities, err := h.service.ListIdentities(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]identityWithRolesResponse, 0, len(identities))
	for _, iw := range identities {
		identity := iw.Identity
		out = append(out, identityWithRolesResponse{User: toUserResponse(&identity), Roles: iw.Roles})
	}
	return c.JSON(http.StatusOK, out)
}

// AssignRoles handles POST /admin/roles/assign.
//
// @Summary      Bulk-assign a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkRoleRequest  true  "Identity ids and role"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/roles/assign [post]
func (h *AdminHandler) AssignRoles(c echo.Context) error {
	var req bulkRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.BulkAssignRole(c.Request().Context(), req.IdentityIDs, req.Role); err != nil {
		return err
	}

	metrics.RoleMutationsTotal.WithLabelValues("assign", req.Role).Add(float64(len(req.IdentityIDs)))
	return c.JSON(http.StatusOK, messageResponse{Message: "roles assigned"})
}

// RevokeRoles handles POST /admin/roles/revoke.
//
// @Summary      Bulk-revoke a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkRoleRequest  true  "Identity ids and role"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/roles/revoke [post]
func (h *AdminHandler) RevokeRoles(c echo.Context) error {
	var req bulkRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.BulkRevokeRole(c.Request().Context(), req.IdentityIDs, req.Role); err != nil {
		return err
	}

	metrics.RoleMutationsTotal.WithLabelValues("revoke", req.Role).Add(float64(len(req.IdentityIDs)))
	return c.JSON(http.StatusOK, messageResponse{Message: "roles revoked"})
}
