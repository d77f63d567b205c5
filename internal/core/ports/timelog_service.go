package ports

import (
	"context"
	"time"

	"github.com/chronolog/timetrack-system/internal/core/domain"
)

// CreateTimelogInput carries the data for a new timelog.
type CreateTimelogInput struct {
	UserID      string
	Description string
	Date        time.Time
	Minutes     int
}

// UpdateTimelogInput carries a partial timelog update. Nil fields are absent
// from the request and left untouched.
type UpdateTimelogInput struct {
	UserID      *string
	Description *string
	Date        *time.Time
	Minutes     *int
}

// TimelogQuery is an optional inclusive date range. Zero times are unbounded.
type TimelogQuery struct {
	From time.Time
	To   time.Time
}

// TimelogDetail is a timelog joined with its owner's email, the shape every
// timelog response uses.
type TimelogDetail struct {
	ID          string
	Description string
	Date        time.Time
	Minutes     int
	UserID      string
	UserEmail   string
}

// ReportGroup is one row of an export document: all work by one user on one
// calendar day.
type ReportGroup struct {
	Date      time.Time
	UserEmail string
	Minutes   int
	Notes     []string
}

// Report is the aggregated export document data. SelfOnly reports carry the
// subject's email in SingleUserEmail; full reports carry the exporting
// admin's email in ExporterEmail and per-group user emails.
type Report struct {
	From            *time.Time
	To              *time.Time
	GeneratedAt     time.Time
	SelfOnly        bool
	SingleUserEmail string
	ExporterEmail   string
	Groups          []ReportGroup
}

// TimelogService defines the timelog use cases. The authenticated caller is
// an explicit argument everywhere; visibility and ownership rules live here.
type TimelogService interface {
	Create(ctx context.Context, authUser *domain.User, input CreateTimelogInput) (*TimelogDetail, error)
	Get(ctx context.Context, authUser *domain.User, logID string) (*TimelogDetail, error)
	List(ctx context.Context, authUser *domain.User, query TimelogQuery) ([]TimelogDetail, error)
	Update(ctx context.Context, authUser *domain.User, logID string, input UpdateTimelogInput) (*TimelogDetail, error)
	Delete(ctx context.Context, authUser *domain.User, logID string) error
	// Export aggregates the caller's visible timelogs into a report.
	Export(ctx context.Context, authUser *domain.User, query TimelogQuery) (*Report, error)
}
