package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/rewardly/cashback-system/internal/core/domain"
)

type stubResolver struct {
	user *domain.User
	err  error
}

func (r *stubResolver) ResolveCurrentUser(_ context.Context, _ string) (*domain.User, error) {
	return r.user, r.err
}

func (r *stubResolver) ResolveCurrentAdmin(user *domain.User) (*domain.User, error) {
	if !user.IsAdmin() {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

func newAuthedContext(e *echo.Echo, header string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	alice := &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleUser, Active: true}
	c, rec := newAuthedContext(e, "Bearer some-token")

	called := false
	mw := Auth(&stubResolver{user: alice})
	handler := mw(func(c echo.Context) error {
		called = true
		if got := CurrentUser(c); got == nil || got.ID != "u1" {
			t.Fatalf("current user not injected: %+v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	c, _ := newAuthedContext(e, "")

	mw := Auth(&stubResolver{})
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthMiddleware_BadHeaderFraming(t *testing.T) {
	e := echo.New()
	for _, header := range []string{"some-token", "Basic abc"} {
		c, _ := newAuthedContext(e, header)

		mw := Auth(&stubResolver{})
		err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401 HTTPError, got %v", header, err)
		}
	}
}

func TestAuthMiddleware_ResolverErrorPropagates(t *testing.T) {
	e := echo.New()
	c, _ := newAuthedContext(e, "Bearer expired-token")

	mw := Auth(&stubResolver{err: domain.ErrInvalidToken})
	err := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })(c)

	if err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken to propagate, got %v", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{}
	mw := RequireAdmin(resolver)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	// No user in context.
	c, _ := newAuthedContext(e, "")
	if err := mw(next)(c); err == nil {
		t.Fatal("expected error without an authenticated user")
	}

	// Plain user.
	c, _ = newAuthedContext(e, "")
	c.Set(userContextKey, &domain.User{ID: "u1", Role: domain.RoleUser})
	if err := mw(next)(c); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for non-admin, got %v", err)
	}

	// Admin.
	c, rec := newAuthedContext(e, "")
	c.Set(userContextKey, &domain.User{ID: "u2", Role: domain.RoleAdmin})
	if err := mw(next)(c); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
