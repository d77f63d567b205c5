package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/chronolog/timetrack-system/internal/core/domain"
	"github.com/chronolog/timetrack-system/internal/core/ports"
)

// oid returns a deterministic 24-hex-character document ID.
func oid(n int) string {
	return fmt.Sprintf("%024x", n)
}

// memUserRepo is an in-memory UserRepository honoring the same contract as
// the Mongo implementation: validation before writes, Conflict on duplicate
// emails, NotFound on misses, oldest-first listing.
type memUserRepo struct {
	seq   int
	users map[string]*domain.User
	order []string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := domain.ValidateUser(user); err != nil {
		return nil, err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.Conflict("email already exists")
		}
	}
	r.seq++
	stored := *user
	stored.ID = oid(r.seq)
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.users[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	out := stored
	return &out, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFoundf("no user with ID %s found", id)
	}
	out := *u
	return &out, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.NotFoundf("no user with email %s found", email)
}

func (r *memUserRepo) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
	match := func(role domain.Role) bool {
		if len(filter.Roles) == 0 {
			return true
		}
		for _, want := range filter.Roles {
			if role == want {
				return true
			}
		}
		return false
	}
	var out []*domain.User
	for _, id := range r.order {
		if u, ok := r.users[id]; ok && match(u.Role) {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memUserRepo) Update(ctx context.Context, id string, fields ports.UserUpdate) (*domain.User, error) {
	if err := domain.ValidateUserFields(fields.Email, fields.Role, fields.PreferredDailyHours); err != nil {
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NotFoundf("no user with ID %s found", id)
	}
	if fields.Email != nil {
		for other, o := range r.users {
			if other != id && o.Email == *fields.Email {
				return nil, domain.Conflict("email already exists")
			}
		}
		u.Email = *fields.Email
	}
	if fields.Role != nil {
		u.Role = *fields.Role
	}
	if fields.PreferredDailyHours != nil {
		v := *fields.PreferredDailyHours
		u.Settings.PreferredDailyHours = &v
	}
	u.UpdatedAt = time.Now().UTC()
	out := *u
	return &out, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.NotFoundf("no user with ID %s found", id)
	}
	delete(r.users, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// memTimelogRepo is an in-memory TimelogRepository, newest date first on Find.
type memTimelogRepo struct {
	seq  int
	logs map[string]*domain.Timelog
}

func newMemTimelogRepo() *memTimelogRepo {
	return &memTimelogRepo{logs: make(map[string]*domain.Timelog)}
}

func (r *memTimelogRepo) Create(ctx context.Context, log *domain.Timelog) (*domain.Timelog, error) {
	if err := domain.ValidateTimelog(log); err != nil {
		return nil, err
	}
	r.seq++
	stored := *log
	stored.ID = oid(1000 + r.seq)
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.logs[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memTimelogRepo) FindByID(ctx context.Context, id string) (*domain.Timelog, error) {
	l, ok := r.logs[id]
	if !ok {
		return nil, domain.NotFoundf("no timelog with ID %s found", id)
	}
	out := *l
	return &out, nil
}

func (r *memTimelogRepo) Find(ctx context.Context, filter ports.TimelogFilter) ([]*domain.Timelog, error) {
	var out []*domain.Timelog
	for _, l := range r.logs {
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		if !filter.From.IsZero() && l.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && l.Date.After(filter.To) {
			continue
		}
		c := *l
		out = append(out, &c)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].Date.Equal(out[b].Date) {
			return out[a].Date.After(out[b].Date)
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

func (r *memTimelogRepo) Update(ctx context.Context, id string, fields ports.TimelogUpdate) (*domain.Timelog, error) {
	if err := domain.ValidateTimelogFields(fields.Minutes, fields.UserID); err != nil {
		return nil, err
	}
	l, ok := r.logs[id]
	if !ok {
		return nil, domain.NotFoundf("no timelog with ID %s found", id)
	}
	if fields.Description != nil {
		l.Description = *fields.Description
	}
	if fields.Date != nil {
		l.Date = *fields.Date
	}
	if fields.Minutes != nil {
		l.Minutes = *fields.Minutes
	}
	if fields.UserID != nil {
		l.UserID = *fields.UserID
	}
	l.UpdatedAt = time.Now().UTC()
	out := *l
	return &out, nil
}

func (r *memTimelogRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.logs[id]; !ok {
		return domain.NotFoundf("no timelog with ID %s found", id)
	}
	delete(r.logs, id)
	return nil
}

func (r *memTimelogRepo) DeleteByUser(ctx context.Context, userID string) error {
	for id, l := range r.logs {
		if l.UserID == userID {
			delete(r.logs, id)
		}
	}
	return nil
}

// memRevoker is an in-memory TokenRevoker.
type memRevoker struct {
	revoked map[string]bool
}

func newMemRevoker() *memRevoker {
	return &memRevoker{revoked: make(map[string]bool)}
}

func (r *memRevoker) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl > 0 {
		r.revoked[token] = true
	}
	return nil
}

func (r *memRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	return r.revoked[token], nil
}
