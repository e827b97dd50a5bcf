package testutil

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/product"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

// InMemoryProductStore implements product.Repository
type InMemoryProductStore struct {
	*InMemoryStore[*product.Product]
}

// NewInMemoryProductStore creates a new in-memory product store
func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		InMemoryStore: NewInMemoryStore[*product.Product](),
	}
}

func copyProduct(p *product.Product) *product.Product {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || p.CompanyID != types.GetCompanyID(ctx) || p.Status == types.StatusDeleted {
		return nil, ierr.NewErrorf("product %s not found", id).
			WithHint("Product not found").
			Mark(ierr.ErrNotFound)
	}
	return copyProduct(p), nil
}

func (s *InMemoryProductStore) List(ctx context.Context, filter *types.Filter) ([]*product.Product, error) {
	items, err := s.InMemoryStore.List(ctx, filter, func(ctx context.Context, p *product.Product, _ interface{}) bool {
		return p.CompanyID == types.GetCompanyID(ctx) && p.Status != types.StatusDeleted
	}, func(a, b *product.Product) bool {
		return a.Name < b.Name
	})
	if err != nil {
		return nil, err
	}
	out := make([]*product.Product, 0, len(items))
	for _, p := range items {
		out = append(out, copyProduct(p))
	}
	return out, nil
}

func (s *InMemoryProductStore) Update(ctx context.Context, p *product.Product) error {
	return s.InMemoryStore.Update(ctx, p.ID, copyProduct(p))
}
