package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lumapanel/admin-api/internal/api/metrics"
	"github.com/lumapanel/admin-api/internal/core/domain"
	"github.com/lumapanel/admin-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	throttle    ports.SignInThrottle
}

func NewAuthHandler(authService ports.AuthService, throttle ports.SignInThrottle) *AuthHandler {
	return &AuthHandler{authService: authService, throttle: throttle}
}

// Signup creates a new identity.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, token, err := h.authService.SignUp(c.Request().Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: toUserResponse(identity)})
}

// Signin authenticates an identity and returns a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	key := strings.ToLower(strings.TrimSpace(req.Email)) + "|" + c.RealIP()
	allowed, err := h.throttle.Allow(c.Request().Context(), key)
	if err != nil {
		return err
	}
	if !allowed {
		metrics.SigninsTotal.WithLabelValues("throttled").Inc()
		return domain.ErrTooManyAttempts
	}

	identity, token, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			_ = h.throttle.RecordFailure(c.Request().Context(), key)
			metrics.SigninsTotal.WithLabelValues("denied").Inc()
		}
		return err
	}

	_ = h.throttle.Reset(c.Request().Context(), key)
	metrics.SigninsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(identity)})
}

// Me resolves the presented token to its identity record.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	identity, err := h.authService.CurrentIdentity(c.Request().Context(), parts[1])
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{User: toUserResponse(identity)})
}
