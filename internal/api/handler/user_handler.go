package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chronolog/timetrack-system/internal/api/middleware"
	"github.com/chronolog/timetrack-system/internal/core/domain"
	"github.com/chronolog/timetrack-system/internal/core/ports"
)

// UserHandler handles the user CRUD routes. All authorization decisions live
// in the service; the handler only translates shapes.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns the accounts visible to the caller.
//
// @Summary      List visible users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}

	users, err := h.userService.List(c.Request().Context(), authUser)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUsersResponse(users))
}

// GetCurrent returns the caller's own account.
func (h *UserHandler) GetCurrent(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(authUser, ""))
}

// Get returns a single user by ID.
func (h *UserHandler) Get(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), authUser, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user, ""))
}

// Create adds an account on behalf of a manager or admin.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      200   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users/user [put]
func (h *UserHandler) Create(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.userService.Create(c.Request().Context(), authUser, ports.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user, ""))
}

// Update applies a partial update to the user in the path.
func (h *UserHandler) Update(c echo.Context) error {
	return h.update(c, c.Param("id"))
}

// UpdateSelf applies a partial update to the caller's own account.
func (h *UserHandler) UpdateSelf(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}
	return h.update(c, authUser.ID)
}

func (h *UserHandler) update(c echo.Context, userID string) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateUserInput{Email: req.Email}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}
	if req.Settings != nil {
		input.PreferredDailyHours = req.Settings.PreferredDailyHours
	}

	user, err := h.userService.Update(c.Request().Context(), authUser, userID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user, ""))
}

// Delete removes a user and all their timelogs.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	authUser, err := middleware.AuthUser(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), authUser, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
