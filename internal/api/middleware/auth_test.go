package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/chronolog/timetrack-system/internal/core/domain"
)

type stubValidator struct {
	validateFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubValidator) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	return s.validateFn(ctx, token)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	alice := &domain.User{ID: "1", Email: "alice@example.com", Role: domain.RoleUser}
	stub := &stubValidator{
		validateFn: func(ctx context.Context, token string) (*domain.User, error) {
			if token != "tok-123" {
				t.Fatalf("unexpected token: %s", token)
			}
			return alice, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(stub)(func(c echo.Context) error {
		called = true
		user, err := AuthUser(c)
		if err != nil {
			t.Fatalf("auth user: %v", err)
		}
		if user.Email != "alice@example.com" {
			t.Fatalf("wrong user injected: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_TokenFromQueryParam(t *testing.T) {
	e := echo.New()
	stub := &stubValidator{
		validateFn: func(ctx context.Context, token string) (*domain.User, error) {
			if token != "tok-456" {
				t.Fatalf("unexpected token: %s", token)
			}
			return &domain.User{ID: "1"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/?token=tok-456", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(stub)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	e := echo.New()
	stub := &stubValidator{
		validateFn: func(ctx context.Context, token string) (*domain.User, error) {
			t.Fatalf("validator should not be called")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	e := echo.New()
	stub := &stubValidator{
		validateFn: func(ctx context.Context, token string) (*domain.User, error) {
			return nil, domain.Unauthorized("not logged in")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer revoked")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "not logged in" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestExtractToken_MalformedHeaderIgnoresQueryFallback(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?token=fallback", nil)
	req.Header.Set("Authorization", "Token abc")
	c := e.NewContext(req, httptest.NewRecorder())

	if got := ExtractToken(c); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}
