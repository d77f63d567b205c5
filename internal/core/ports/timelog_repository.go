package ports

import (
	"context"
	"time"

	"github.com/chronolog/timetrack-system/internal/core/domain"
)

// TimelogFilter narrows a timelog query. Zero times mean an unbounded range;
// an empty UserID means no owner filter.
type TimelogFilter struct {
	From   time.Time // inclusive
	To     time.Time // inclusive
	UserID string
}

// TimelogUpdate carries the fields of a partial timelog update. Nil fields
// are left untouched.
type TimelogUpdate struct {
	Description *string
	Date        *time.Time
	Minutes     *int
	UserID      *string
}

// TimelogRepository defines persistence operations for timelogs.
type TimelogRepository interface {
	Create(ctx context.Context, log *domain.Timelog) (*domain.Timelog, error)
	FindByID(ctx context.Context, id string) (*domain.Timelog, error)
	// Find returns timelogs matching filter, newest date first.
	Find(ctx context.Context, filter TimelogFilter) ([]*domain.Timelog, error)
	// Update applies the non-nil fields and returns the updated timelog.
	Update(ctx context.Context, id string, fields TimelogUpdate) (*domain.Timelog, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUser removes every timelog owned by userID.
	DeleteByUser(ctx context.Context, userID string) error
}
