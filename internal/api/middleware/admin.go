package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumapanel/admin-api/internal/core/domain"
	"github.com/lumapanel/admin-api/internal/core/ports"
)

// RequireAdmin is the admin gate. It must run after Auth. The role lookup
// happens on every request, never cached, so a revoked admin role takes
// effect on the very next call.
func RequireAdmin(roles ports.RoleRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identityID, _ := c.Get(CtxIdentityID).(string)
			if identityID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			has, err := roles.HasRole(c.Request().Context(), identityID, domain.RoleAdmin)
			if err != nil {
				return err
			}
			if !has {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}

			return next(c)
		}
	}
}
