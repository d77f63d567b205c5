package ports

import (
	"context"

	"github.com/chronolog/timetrack-system/internal/core/domain"
)

// CreateUserInput carries the data for an admin/manager user creation.
type CreateUserInput struct {
	Email    string
	Password string
	Role     domain.Role // empty defaults to user
}

// UpdateUserInput carries a partial user update. Nil fields are absent from
// the request and left untouched.
type UpdateUserInput struct {
	Email               *string
	Role                *domain.Role
	PreferredDailyHours *float64
}

// UserService defines the user use cases. Every operation takes the
// authenticated caller explicitly; all role and ownership decisions happen
// here, not in the transport layer.
type UserService interface {
	Create(ctx context.Context, authUser *domain.User, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, authUser *domain.User, userID string) (*domain.User, error)
	List(ctx context.Context, authUser *domain.User) ([]*domain.User, error)
	Update(ctx context.Context, authUser *domain.User, userID string, input UpdateUserInput) (*domain.User, error)
	// Delete removes the user and cascades to their timelogs.
	Delete(ctx context.Context, authUser *domain.User, userID string) error
}
