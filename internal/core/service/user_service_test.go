package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chronolog/timetrack-system/internal/core/domain"
	"github.com/chronolog/timetrack-system/internal/core/ports"
)

type userFixture struct {
	svc      *UserService
	users    *memUserRepo
	timelogs *memTimelogRepo
	user     *domain.User
	manager  *domain.User
	admin    *domain.User
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	users := newMemUserRepo()
	timelogs := newMemTimelogRepo()
	return &userFixture{
		svc:      NewUserService(users, timelogs, zerolog.Nop()),
		users:    users,
		timelogs: timelogs,
		user:     seedUser(t, users, "user@example.com", "secret", domain.RoleUser),
		manager:  seedUser(t, users, "manager@example.com", "secret", domain.RoleManager),
		admin:    seedUser(t, users, "admin@example.com", "secret", domain.RoleAdmin),
	}
}

func TestUserService_Create_Permissions(t *testing.T) {
	fx := newUserFixture(t)

	t.Run("user may not create", func(t *testing.T) {
		_, err := fx.svc.Create(context.Background(), fx.user, ports.CreateUserInput{
			Email: "new@example.com", Password: "pw", Role: domain.RoleUser,
		})
		if domain.KindOf(err) != domain.KindForbidden || err.Error() != "not allowed to create users" {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("manager may not create admins", func(t *testing.T) {
		_, err := fx.svc.Create(context.Background(), fx.manager, ports.CreateUserInput{
			Email: "new@example.com", Password: "pw", Role: domain.RoleAdmin,
		})
		if domain.KindOf(err) != domain.KindForbidden || err.Error() != "not allowed to create admins" {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("manager creates manager", func(t *testing.T) {
		created, err := fx.svc.Create(context.Background(), fx.manager, ports.CreateUserInput{
			Email: "new-manager@example.com", Password: "pw", Role: domain.RoleManager,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.Role != domain.RoleManager {
			t.Fatalf("expected manager role, got %s", created.Role)
		}
	})

	t.Run("admin creates admin", func(t *testing.T) {
		created, err := fx.svc.Create(context.Background(), fx.admin, ports.CreateUserInput{
			Email: "new-admin@example.com", Password: "pw", Role: domain.RoleAdmin,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.Role != domain.RoleAdmin {
			t.Fatalf("expected admin role, got %s", created.Role)
		}
	})

	t.Run("email must contain @", func(t *testing.T) {
		_, err := fx.svc.Create(context.Background(), fx.admin, ports.CreateUserInput{
			Email: "not-an-email", Password: "pw", Role: domain.RoleUser,
		})
		if domain.KindOf(err) != domain.KindInvalid || err.Error() != "email must be valid" {
			t.Fatalf("expected invalid email error, got %v", err)
		}
	})
}

func TestUserService_Get_Visibility(t *testing.T) {
	fx := newUserFixture(t)

	t.Run("self always visible", func(t *testing.T) {
		got, err := fx.svc.Get(context.Background(), fx.user, fx.user.ID)
		if err != nil {
			t.Fatalf("get self: %v", err)
		}
		if got.ID != fx.user.ID {
			t.Fatalf("wrong user: %s", got.ID)
		}
	})

	t.Run("user reading another account gets not found", func(t *testing.T) {
		_, err := fx.svc.Get(context.Background(), fx.user, fx.manager.ID)
		if domain.KindOf(err) != domain.KindNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("user probing a nonexistent ID gets the same not found", func(t *testing.T) {
		_, existsErr := fx.svc.Get(context.Background(), fx.user, fx.manager.ID)
		_, missingErr := fx.svc.Get(context.Background(), fx.user, oid(999))
		if domain.KindOf(existsErr) != domain.KindNotFound || domain.KindOf(missingErr) != domain.KindNotFound {
			t.Fatalf("expected not found for both, got %v / %v", existsErr, missingErr)
		}
	})

	t.Run("malformed ID is a bad request", func(t *testing.T) {
		_, err := fx.svc.Get(context.Background(), fx.admin, "zzz")
		if domain.KindOf(err) != domain.KindBadRequest {
			t.Fatalf("expected bad request, got %v", err)
		}
	})

	t.Run("manager reads other accounts", func(t *testing.T) {
		got, err := fx.svc.Get(context.Background(), fx.manager, fx.user.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != fx.user.ID {
			t.Fatalf("wrong user: %s", got.ID)
		}
	})
}

func TestUserService_List_ScopedByRole(t *testing.T) {
	fx := newUserFixture(t)

	emails := func(users []*domain.User) map[string]bool {
		out := make(map[string]bool, len(users))
		for _, u := range users {
			out[u.Email] = true
		}
		return out
	}

	t.Run("user sees only self", func(t *testing.T) {
		got, err := fx.svc.List(context.Background(), fx.user)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].ID != fx.user.ID {
			t.Fatalf("expected only self, got %d users", len(got))
		}
	})

	t.Run("manager sees users and managers but not admins", func(t *testing.T) {
		got, err := fx.svc.List(context.Background(), fx.manager)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		seen := emails(got)
		if !seen["user@example.com"] || !seen["manager@example.com"] {
			t.Fatalf("missing expected accounts: %v", seen)
		}
		if seen["admin@example.com"] {
			t.Fatalf("manager should not see admins")
		}
	})

	t.Run("admin sees everyone", func(t *testing.T) {
		got, err := fx.svc.List(context.Background(), fx.admin)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 users, got %d", len(got))
		}
	})
}

func TestUserService_Update_RoleEscalation(t *testing.T) {
	fx := newUserFixture(t)
	adminRole := domain.RoleAdmin
	managerRole := domain.RoleManager

	t.Run("user promoting self to admin reads as unknown role", func(t *testing.T) {
		_, err := fx.svc.Update(context.Background(), fx.user, fx.user.ID, ports.UpdateUserInput{Role: &adminRole})
		if domain.KindOf(err) != domain.KindInvalid || err.Error() != "role admin not found" {
			t.Fatalf("expected invalid role error, got %v", err)
		}
	})

	t.Run("manager promoting to admin reads as unknown role", func(t *testing.T) {
		_, err := fx.svc.Update(context.Background(), fx.manager, fx.user.ID, ports.UpdateUserInput{Role: &adminRole})
		if domain.KindOf(err) != domain.KindInvalid || err.Error() != "role admin not found" {
			t.Fatalf("expected invalid role error, got %v", err)
		}
	})

	t.Run("manager promotes user to manager", func(t *testing.T) {
		got, err := fx.svc.Update(context.Background(), fx.manager, fx.user.ID, ports.UpdateUserInput{Role: &managerRole})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Role != domain.RoleManager {
			t.Fatalf("expected manager, got %s", got.Role)
		}
	})

	t.Run("admin promotes to admin", func(t *testing.T) {
		got, err := fx.svc.Update(context.Background(), fx.admin, fx.manager.ID, ports.UpdateUserInput{Role: &adminRole})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Role != domain.RoleAdmin {
			t.Fatalf("expected admin, got %s", got.Role)
		}
	})
}

func TestUserService_Update_SettingsSelfOnly(t *testing.T) {
	fx := newUserFixture(t)
	hours := 7.5

	t.Run("owner updates own settings", func(t *testing.T) {
		got, err := fx.svc.Update(context.Background(), fx.user, fx.user.ID, ports.UpdateUserInput{PreferredDailyHours: &hours})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Settings.PreferredDailyHours == nil || *got.Settings.PreferredDailyHours != 7.5 {
			t.Fatalf("settings not applied: %+v", got.Settings)
		}
	})

	t.Run("zero hours round-trips as an explicit value", func(t *testing.T) {
		zero := 0.0
		got, err := fx.svc.Update(context.Background(), fx.user, fx.user.ID, ports.UpdateUserInput{PreferredDailyHours: &zero})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if got.Settings.PreferredDailyHours == nil || *got.Settings.PreferredDailyHours != 0 {
			t.Fatalf("explicit zero lost: %+v", got.Settings)
		}
	})

	t.Run("even admins may not touch another user's settings", func(t *testing.T) {
		_, err := fx.svc.Update(context.Background(), fx.admin, fx.user.ID, ports.UpdateUserInput{PreferredDailyHours: &hours})
		if domain.KindOf(err) != domain.KindForbidden || err.Error() != "can only update your own settings" {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("negative hours fail validation", func(t *testing.T) {
		neg := -1.0
		_, err := fx.svc.Update(context.Background(), fx.user, fx.user.ID, ports.UpdateUserInput{PreferredDailyHours: &neg})
		if domain.KindOf(err) != domain.KindInvalid {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestUserService_Update_NoOpReturnsUnchanged(t *testing.T) {
	fx := newUserFixture(t)

	got, err := fx.svc.Update(context.Background(), fx.user, fx.user.ID, ports.UpdateUserInput{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Email != fx.user.Email || got.Role != fx.user.Role {
		t.Fatalf("no-op update changed the user: %+v", got)
	}
}

func TestUserService_Delete(t *testing.T) {
	fx := newUserFixture(t)

	date := time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := fx.timelogs.Create(context.Background(), &domain.Timelog{
			Description: "work",
			Date:        date.AddDate(0, 0, i),
			Minutes:     60,
			UserID:      fx.user.ID,
		}); err != nil {
			t.Fatalf("seed timelog: %v", err)
		}
	}

	t.Run("user may not delete accounts", func(t *testing.T) {
		err := fx.svc.Delete(context.Background(), fx.user, fx.manager.ID)
		if domain.KindOf(err) != domain.KindForbidden || err.Error() != "not allowed to delete users" {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("delete cascades to timelogs", func(t *testing.T) {
		if err := fx.svc.Delete(context.Background(), fx.manager, fx.user.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := fx.users.FindByID(context.Background(), fx.user.ID); domain.KindOf(err) != domain.KindNotFound {
			t.Fatalf("user still present: %v", err)
		}
		remaining, err := fx.timelogs.Find(context.Background(), ports.TimelogFilter{UserID: fx.user.ID})
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(remaining) != 0 {
			t.Fatalf("expected cascade to remove timelogs, %d left", len(remaining))
		}
	})

	t.Run("deleting a missing user is not found", func(t *testing.T) {
		err := fx.svc.Delete(context.Background(), fx.admin, oid(999))
		if domain.KindOf(err) != domain.KindNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}
