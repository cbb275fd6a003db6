package testutil

import (
	"context"

	"github.com/opsdesk/portal/internal/domain/user"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func copyUser(u *user.User) *user.User {
	cp := *u
	return &cp
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

func (s *InMemoryUserStore) GetByNickname(ctx context.Context, nickname string) (*user.User, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, u *user.User, _ interface{}) bool {
		return u.Nickname == nickname && u.Status == types.StatusActive
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("user not found").
			WithHintf("No active user with nickname %s", nickname).
			Mark(ierr.ErrNotFound)
	}
	return copyUser(items[0]), nil
}

func (s *InMemoryUserStore) List(ctx context.Context, filter *types.UserFilter) ([]*user.User, error) {
	var qf interface{}
	var status *types.QueryFilter
	if filter != nil {
		qf = queryFilter(filter.QueryFilter)
		status = filter.QueryFilter
	}
	items, err := s.InMemoryStore.List(ctx, qf, func(ctx context.Context, u *user.User, _ interface{}) bool {
		if !matchesStatus(u.Status, status) {
			return false
		}
		return filter == nil || len(filter.Nicknames) == 0 || lo.Contains(filter.Nicknames, u.Nickname)
	}, func(i, j *user.User) bool {
		return i.Name < j.Name
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(u *user.User, _ int) *user.User { return copyUser(u) }), nil
}
