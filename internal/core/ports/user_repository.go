package ports

import (
	"context"

	"github.com/chronolog/timetrack-system/internal/core/domain"
)

// ListUsersFilter narrows a user listing. An empty Roles slice means no
// role filter.
type ListUsersFilter struct {
	Roles []domain.Role
}

// UserUpdate carries the fields of a partial user update. Nil fields are
// left untouched.
type UserUpdate struct {
	Email               *string
	Role                *domain.Role
	PreferredDailyHours *float64
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user. A duplicate email yields a Conflict error.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns users matching filter, oldest first.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	// Update applies the non-nil fields and returns the updated user.
	Update(ctx context.Context, id string, fields UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
