package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chronolog/timetrack-system/internal/core/domain"
)

// authUserKey is the context key the authenticated user is stored under.
const authUserKey = "authUser"

// TokenValidator resolves a session token to its user. All invalid tokens
// fail the same way.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.User, error)
}

// Auth authenticates the request from a bearer token (Authorization header or
// token query parameter) and injects the resolved user into the context.
// Missing, malformed, revoked, and orphaned tokens are all rejected with the
// same 401 before any handler runs.
func Auth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}

			user, err := validator.ValidateToken(c.Request().Context(), token)
			if err != nil {
				if domain.KindOf(err) == domain.KindUnauthorized {
					return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
				}
				return err
			}

			c.Set(authUserKey, user)
			return next(c)
		}
	}
}

// ExtractToken pulls the session token from the Authorization header
// ("Bearer <token>") or, failing that, the token query parameter.
func ExtractToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	return c.QueryParam("token")
}

// AuthUser returns the authenticated user injected by Auth.
func AuthUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(authUserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
	}
	return user, nil
}
