package testutil

import (
	"context"
	"time"

	"github.com/tagihin/tagihin/internal/domain/user"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

// NewInMemoryUserStore creates a new in-memory user store
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func copyUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	out := *u
	if u.PlanRenewsAt != nil {
		t := *u.PlanRenewsAt
		out.PlanRenewsAt = &t
	}
	return &out
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("user %s not found", id).
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return copyUser(u), nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	users, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, u *user.User, _ interface{}) bool {
		return u.Email == email
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ierr.NewErrorf("user with email %s not found", email).
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return copyUser(users[0]), nil
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	return s.InMemoryStore.Update(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) FindRenewalsDue(ctx context.Context, renewsAt time.Time) ([]*user.User, error) {
	day := renewsAt.Format("2006-01-02")
	users, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, u *user.User, _ interface{}) bool {
		if u.OnFreePlan() || u.PlanRenewsAt == nil || u.Status != types.StatusActive {
			return false
		}
		return u.PlanRenewsAt.Format("2006-01-02") == day
	}, func(a, b *user.User) bool {
		return a.ID < b.ID
	})
	if err != nil {
		return nil, err
	}
	out := make([]*user.User, 0, len(users))
	for _, u := range users {
		out = append(out, copyUser(u))
	}
	return out, nil
}
