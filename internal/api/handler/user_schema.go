package handler

import "github.com/chronolog/timetrack-system/internal/core/domain"

// --- Request types ---

type authRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type settingsRequest struct {
	PreferredDailyHours *float64 `json:"preferredDailyHours"`
}

// updateUserRequest uses pointers throughout: only fields present in the
// payload are applied.
type updateUserRequest struct {
	Email    *string          `json:"email"`
	Role     *string          `json:"role"`
	Settings *settingsRequest `json:"settings"`
}

// --- Response types ---

// userResponse is the fixed output schema for every user. AuthInfo is never
// part of it.
type userResponse struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	Role     string          `json:"role"`
	Settings domain.Settings `json:"settings"`
	Token    string          `json:"token,omitempty"`
}

type usersResponse struct {
	NumUsers int            `json:"numUsers"`
	Users    []userResponse `json:"users"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type logoutResponse struct {
	Token *string `json:"token"`
}
