package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lumapanel/admin-api/internal/core/domain"
)

type stubRoleRepo struct {
	admins map[string]bool
	calls  int
}

func (r *stubRoleRepo) Assign(context.Context, string, string) error { return nil }
func (r *stubRoleRepo) Revoke(context.Context, string, string) error { return nil }
func (r *stubRoleRepo) ListForIdentity(context.Context, string) ([]domain.RoleAssignment, error) {
	return nil, nil
}
func (r *stubRoleRepo) ListAll(context.Context) ([]domain.RoleAssignment, error) { return nil, nil }

func (r *stubRoleRepo) HasRole(_ context.Context, identityID, role string) (bool, error) {
	r.calls++
	return role == domain.RoleAdmin && r.admins[identityID], nil
}

func TestRequireAdmin_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxIdentityID, "id-1")

	roles := &stubRoleRepo{admins: map[string]bool{"id-1": true}}
	called := false
	mw := RequireAdmin(roles)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAdmin_ForbidsWithoutRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(CtxIdentityID, "id-2")

	roles := &stubRoleRepo{admins: map[string]bool{"id-1": true}}
	mw := RequireAdmin(roles)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAdmin_RejectsWithoutClaims(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	roles := &stubRoleRepo{admins: map[string]bool{}}
	mw := RequireAdmin(roles)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if roles.calls != 0 {
		t.Fatalf("role lookup must not run without claims")
	}
}

func TestRequireAdmin_ReEvaluatesEveryRequest(t *testing.T) {
	e := echo.New()
	roles := &stubRoleRepo{admins: map[string]bool{"id-1": true}}
	mw := RequireAdmin(roles)
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	run := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(CtxIdentityID, "id-1")
		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec.Code
	}

	if code := run(); code != http.StatusOK {
		t.Fatalf("expected 200 while admin, got %d", code)
	}

	// Revoke between requests: the next call must be denied.
	roles.admins["id-1"] = false
	if code := run(); code != http.StatusForbidden {
		t.Fatalf("expected 403 after revocation, got %d", code)
	}
	if roles.calls != 2 {
		t.Fatalf("expected a lookup per request, got %d", roles.calls)
	}
}
