package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chronolog/timetrack-system/internal/api/metrics"
	"github.com/chronolog/timetrack-system/internal/core/domain"
	"github.com/chronolog/timetrack-system/internal/core/ports"
)

// UserService implements the user use cases: role-gated creation, visibility
// rules on reads, field-level update policy, and cascading deletion.
type UserService struct {
	users    ports.UserRepository
	timelogs ports.TimelogRepository
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, timelogs ports.TimelogRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, timelogs: timelogs, logger: logger}
}

// Create adds a user on behalf of a manager or admin. Managers may not mint
// admins.
func (s *UserService) Create(ctx context.Context, authUser *domain.User, input ports.CreateUserInput) (*domain.User, error) {
	if !strings.Contains(input.Email, "@") {
		return nil, domain.Invalidf("email must be valid")
	}
	if authUser.Role == domain.RoleManager && input.Role == domain.RoleAdmin {
		return nil, domain.Forbidden("not allowed to create admins")
	}
	if !authUser.Role.AtLeast(domain.RoleManager) {
		return nil, domain.Forbidden("not allowed to create users")
	}

	user, err := newUserRecord(input.Email, input.Password, input.Role)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("role", string(created.Role)).
		Str("created_by", authUser.ID).
		Msg("user created")
	metrics.UsersCreatedTotal.WithLabelValues(string(created.Role)).Inc()
	return created, nil
}

// Get returns a single user. Self is always readable; other accounts are
// visible to managers and admins only, and USER-role callers get the same
// "not found" whether the target exists or not.
func (s *UserService) Get(ctx context.Context, authUser *domain.User, userID string) (*domain.User, error) {
	if userID == authUser.ID {
		return authUser, nil
	}
	if !domain.ValidID(userID) {
		return nil, domain.BadRequestf("ID %s is not valid", userID)
	}
	if !authUser.Role.AtLeast(domain.RoleManager) {
		return nil, domain.NotFoundf("no user with ID %s found", userID)
	}
	return s.users.FindByID(ctx, userID)
}

// List returns the accounts visible to the caller: self for users, everything
// below admin for managers, everyone for admins.
func (s *UserService) List(ctx context.Context, authUser *domain.User) ([]*domain.User, error) {
	switch authUser.Role {
	case domain.RoleUser:
		return []*domain.User{authUser}, nil
	case domain.RoleManager:
		return s.users.List(ctx, ports.ListUsersFilter{
			Roles: []domain.Role{domain.RoleUser, domain.RoleManager},
		})
	default:
		return s.users.List(ctx, ports.ListUsersFilter{})
	}
}

// Update applies a partial update under the field-level policy. Role
// escalation beyond the caller's rights reads as "role not found" rather than
// a permission error, and settings are writable only by their owner.
func (s *UserService) Update(ctx context.Context, authUser *domain.User, userID string, input ports.UpdateUserInput) (*domain.User, error) {
	if !domain.ValidID(userID) {
		return nil, domain.BadRequestf("ID %s is not valid", userID)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if userID != authUser.ID && !authUser.Role.AtLeast(domain.RoleManager) {
		return nil, domain.NotFoundf("no user with ID %s found", userID)
	}
	if input.Role != nil && *input.Role == domain.RoleAdmin && authUser.Role != domain.RoleAdmin {
		return nil, domain.Invalidf("role %s not found", *input.Role)
	}
	if input.Role != nil && *input.Role == domain.RoleManager && !authUser.Role.AtLeast(domain.RoleManager) {
		return nil, domain.Invalidf("role %s not found", *input.Role)
	}

	var fields ports.UserUpdate
	if input.Email != nil && (userID == authUser.ID || authUser.Role.AtLeast(domain.RoleManager)) {
		fields.Email = input.Email
	}
	if input.Role != nil {
		fields.Role = input.Role
	}
	if input.PreferredDailyHours != nil {
		if userID != authUser.ID {
			return nil, domain.Forbidden("can only update your own settings")
		}
		fields.PreferredDailyHours = input.PreferredDailyHours
	}

	if fields.Email == nil && fields.Role == nil && fields.PreferredDailyHours == nil {
		return user, nil
	}

	updated, err := s.users.Update(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("updated_by", authUser.ID).
		Msg("user updated")
	return updated, nil
}

// Delete removes a user and cascades to their timelogs. The cascade is not
// atomic: timelogs go first, then the user. A crash in between orphans
// timelogs rather than leaving a user with logs.
func (s *UserService) Delete(ctx context.Context, authUser *domain.User, userID string) error {
	if !domain.ValidID(userID) {
		return domain.BadRequestf("ID %s is not valid", userID)
	}
	if !authUser.Role.AtLeast(domain.RoleManager) {
		return domain.Forbidden("not allowed to delete users")
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.timelogs.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("deleted_by", authUser.ID).
		Msg("user deleted with timelog cascade")
	metrics.UsersDeletedTotal.Inc()
	return nil
}
