package testutil

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/client"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]
}

// NewInMemoryClientStore creates a new in-memory client store
func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client](),
	}
}

func copyClient(c *client.Client) *client.Client {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyClient(c))
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string) (*client.Client, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || c.CompanyID != types.GetCompanyID(ctx) || c.Status == types.StatusDeleted {
		return nil, ierr.NewErrorf("client %s not found", id).
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	return copyClient(c), nil
}

func (s *InMemoryClientStore) List(ctx context.Context, filter *types.Filter) ([]*client.Client, error) {
	items, err := s.InMemoryStore.List(ctx, filter, func(ctx context.Context, c *client.Client, _ interface{}) bool {
		return c.CompanyID == types.GetCompanyID(ctx) && c.Status != types.StatusDeleted
	}, func(a, b *client.Client) bool {
		return a.Name < b.Name
	})
	if err != nil {
		return nil, err
	}
	out := make([]*client.Client, 0, len(items))
	for _, c := range items {
		out = append(out, copyClient(c))
	}
	return out, nil
}

func (s *InMemoryClientStore) Update(ctx context.Context, c *client.Client) error {
	return s.InMemoryStore.Update(ctx, c.ID, copyClient(c))
}
