package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumapanel/admin-api/internal/api/metrics"
	"github.com/lumapanel/admin-api/internal/core/ports"
)

// ThemeHandler serves the globally shared theme configuration. Reads are
// public; writes sit behind the admin gate in the router.
type ThemeHandler struct {
	service ports.ThemeService
}

func NewThemeHandler(service ports.ThemeService) *ThemeHandler {
	return &ThemeHandler{service: service}
}

// Get handles GET /theme.
//
// @Summary      Get theme configuration
// @Tags         theme
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /theme [get]
func (h *ThemeHandler) Get(c echo.Context) error {
	config, err := h.service.GetTheme(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, config)
}

// Update handles PUT /theme (admin only).
//
// @Summary      Update theme configuration
// @Tags         theme
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateThemeRequest  true  "Key/value pairs to upsert"
// @Success      200   {object}  messageResponse
// @Failure      403   {object}  errorResponse
// @Router       /theme [put]
func (h *ThemeHandler) Update(c echo.Context) error {
	var req updateThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateTheme(c.Request().Context(), req.Config); err != nil {
		return err
	}

	metrics.ThemeUpdatesTotal.Add(float64(len(req.Config)))
	return c.JSON(http.StatusOK, messageResponse{Message: "theme configuration updated"})
}
