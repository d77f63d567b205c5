package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/chronolog/timetrack-system/internal/api/metrics"
	"github.com/chronolog/timetrack-system/internal/core/domain"
	"github.com/chronolog/timetrack-system/internal/core/ports"
)

// TimelogService implements the timelog use cases. Non-owners are told a log
// does not exist rather than that it is off limits, with one deliberate
// exception on delete for managers.
type TimelogService struct {
	timelogs ports.TimelogRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewTimelogService(timelogs ports.TimelogRepository, users ports.UserRepository, logger zerolog.Logger) *TimelogService {
	return &TimelogService{timelogs: timelogs, users: users, logger: logger}
}

// Create records a timelog. Users log for themselves; admins may log for
// anyone. The owner must exist.
func (s *TimelogService) Create(ctx context.Context, authUser *domain.User, input ports.CreateTimelogInput) (*ports.TimelogDetail, error) {
	if authUser.ID != input.UserID && authUser.Role != domain.RoleAdmin {
		return nil, domain.Forbidden("not allowed to create timelogs for other users")
	}

	owner, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.NotFoundf("user with ID %s not found", input.UserID)
		}
		return nil, err
	}

	created, err := s.timelogs.Create(ctx, &domain.Timelog{
		Description: input.Description,
		Date:        input.Date,
		Minutes:     input.Minutes,
		UserID:      owner.ID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("timelog_id", created.ID).
		Str("user_id", owner.ID).
		Int("minutes", created.Minutes).
		Msg("timelog created")
	metrics.TimelogsCreatedTotal.Inc()
	return detail(created, owner.Email), nil
}

// Get returns a single timelog, visible to its owner and to admins. Everyone
// else gets the same "not found" a nonexistent ID would produce.
func (s *TimelogService) Get(ctx context.Context, authUser *domain.User, logID string) (*ports.TimelogDetail, error) {
	if !domain.ValidID(logID) {
		return nil, domain.BadRequestf("ID %s is not valid", logID)
	}
	log, err := s.visibleTimelog(ctx, authUser, logID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, log)
}

// List returns the caller's timelogs, or all timelogs for admins, optionally
// narrowed to an inclusive date range. Newest date first.
func (s *TimelogService) List(ctx context.Context, authUser *domain.User, query ports.TimelogQuery) ([]ports.TimelogDetail, error) {
	logs, err := s.findVisible(ctx, authUser, query)
	if err != nil {
		return nil, err
	}
	return s.populateAll(ctx, logs)
}

// Update applies a partial update to a timelog the caller can see.
// Reassigning ownership to a third user is allowed only for admins; for
// everyone else the rejected assignee reads as a user that does not exist.
func (s *TimelogService) Update(ctx context.Context, authUser *domain.User, logID string, input ports.UpdateTimelogInput) (*ports.TimelogDetail, error) {
	if !domain.ValidID(logID) {
		return nil, domain.BadRequestf("log ID %s is not valid", logID)
	}
	if input.UserID != nil && !domain.ValidID(*input.UserID) {
		return nil, domain.BadRequestf("user ID %s is not valid", *input.UserID)
	}
	if input.UserID != nil && authUser.Role != domain.RoleAdmin && *input.UserID != authUser.ID {
		return nil, domain.NotFoundf("no user with ID %s found", *input.UserID)
	}

	log, err := s.visibleTimelog(ctx, authUser, logID)
	if err != nil {
		return nil, err
	}

	if input.UserID != nil {
		if _, err := s.users.FindByID(ctx, *input.UserID); err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return nil, domain.NotFoundf("no user with ID %s found", *input.UserID)
			}
			return nil, err
		}
	}

	fields := ports.TimelogUpdate{
		Description: input.Description,
		Date:        input.Date,
		Minutes:     input.Minutes,
		UserID:      input.UserID,
	}
	if fields.Description == nil && fields.Date == nil && fields.Minutes == nil && fields.UserID == nil {
		return s.populate(ctx, log)
	}

	updated, err := s.timelogs.Update(ctx, logID, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("timelog_id", logID).
		Str("updated_by", authUser.ID).
		Msg("timelog updated")
	return s.populate(ctx, updated)
}

// Delete removes a timelog. Owners and admins may always delete. A USER-role
// caller deleting someone else's log is told it does not exist; a manager is
// told outright they may not.
func (s *TimelogService) Delete(ctx context.Context, authUser *domain.User, logID string) error {
	if !domain.ValidID(logID) {
		return domain.BadRequestf("ID %s is not valid", logID)
	}

	log, err := s.timelogs.FindByID(ctx, logID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return domain.NotFoundf("no timelog with ID %s found", logID)
		}
		return err
	}

	if log.UserID != authUser.ID && authUser.Role != domain.RoleAdmin {
		if authUser.Role == domain.RoleUser {
			return domain.NotFoundf("no timelog with ID %s found", logID)
		}
		return domain.Forbidden("can only delete your own timelogs")
	}

	if err := s.timelogs.Delete(ctx, logID); err != nil {
		return err
	}

	s.logger.Info().
		Str("timelog_id", logID).
		Str("deleted_by", authUser.ID).
		Msg("timelog deleted")
	metrics.TimelogsDeletedTotal.Inc()
	return nil
}

// Export aggregates the caller's visible timelogs into a report document.
func (s *TimelogService) Export(ctx context.Context, authUser *domain.User, query ports.TimelogQuery) (*ports.Report, error) {
	logs, err := s.findVisible(ctx, authUser, query)
	if err != nil {
		return nil, err
	}
	details, err := s.populateAll(ctx, logs)
	if err != nil {
		return nil, err
	}

	report := BuildReport(details, authUser, query)
	mode := "full"
	if report.SelfOnly {
		mode = "self_only"
	}
	metrics.ExportsTotal.WithLabelValues(mode).Inc()
	return report, nil
}

// visibleTimelog fetches a timelog and applies the shared read-visibility
// rule: owner or admin, otherwise the log might as well not exist.
func (s *TimelogService) visibleTimelog(ctx context.Context, authUser *domain.User, logID string) (*domain.Timelog, error) {
	log, err := s.timelogs.FindByID(ctx, logID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.NotFoundf("no timelog with ID %s found", logID)
		}
		return nil, err
	}
	if log.UserID != authUser.ID && authUser.Role != domain.RoleAdmin {
		return nil, domain.NotFoundf("no timelog with ID %s found", logID)
	}
	return log, nil
}

func (s *TimelogService) findVisible(ctx context.Context, authUser *domain.User, query ports.TimelogQuery) ([]*domain.Timelog, error) {
	filter := ports.TimelogFilter{From: query.From, To: query.To}
	if authUser.Role != domain.RoleAdmin {
		filter.UserID = authUser.ID
	}
	return s.timelogs.Find(ctx, filter)
}

// populateAll joins timelogs with their owners' emails, fetching each unique
// owner once.
func (s *TimelogService) populateAll(ctx context.Context, logs []*domain.Timelog) ([]ports.TimelogDetail, error) {
	emails := make(map[string]string)
	details := make([]ports.TimelogDetail, 0, len(logs))
	for _, log := range logs {
		email, ok := emails[log.UserID]
		if !ok {
			owner, err := s.users.FindByID(ctx, log.UserID)
			if err != nil {
				if domain.KindOf(err) != domain.KindNotFound {
					return nil, err
				}
				// orphaned log from a non-atomic cascade; keep it, without an email
			} else {
				email = owner.Email
			}
			emails[log.UserID] = email
		}
		details = append(details, *detail(log, email))
	}
	return details, nil
}

func (s *TimelogService) populate(ctx context.Context, log *domain.Timelog) (*ports.TimelogDetail, error) {
	details, err := s.populateAll(ctx, []*domain.Timelog{log})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func detail(log *domain.Timelog, email string) *ports.TimelogDetail {
	return &ports.TimelogDetail{
		ID:          log.ID,
		Description: log.Description,
		Date:        log.Date,
		Minutes:     log.Minutes,
		UserID:      log.UserID,
		UserEmail:   email,
	}
}
