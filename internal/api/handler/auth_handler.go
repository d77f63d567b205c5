package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chronolog/timetrack-system/internal/api/middleware"
	"github.com/chronolog/timetrack-system/internal/core/ports"
)

// AuthHandler handles login, registration, and logout.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns their profile with a fresh token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req authRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user, token))
}

// Register creates an account with the default user role and logs it in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authRequest  true  "Registration details"
// @Success      200   {object}  userResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [put]
func (h *AuthHandler) Register(c echo.Context) error {
	var req authRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user, token))
}

// Logout revokes the presented token, if any. Always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := middleware.ExtractToken(c); token != "" {
		if err := h.authService.RevokeToken(c.Request().Context(), token); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, logoutResponse{Token: nil})
}
