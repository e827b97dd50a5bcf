package testutil

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/taxrate"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

// InMemoryTaxRateStore implements taxrate.Repository
type InMemoryTaxRateStore struct {
	*InMemoryStore[*taxrate.TaxRate]
}

// NewInMemoryTaxRateStore creates a new in-memory tax rate store
func NewInMemoryTaxRateStore() *InMemoryTaxRateStore {
	return &InMemoryTaxRateStore{
		InMemoryStore: NewInMemoryStore[*taxrate.TaxRate](),
	}
}

func copyTaxRate(t *taxrate.TaxRate) *taxrate.TaxRate {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

func (s *InMemoryTaxRateStore) Create(ctx context.Context, t *taxrate.TaxRate) error {
	return s.InMemoryStore.Create(ctx, t.ID, copyTaxRate(t))
}

func (s *InMemoryTaxRateStore) Get(ctx context.Context, id string) (*taxrate.TaxRate, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || t.CompanyID != types.GetCompanyID(ctx) || t.Status == types.StatusDeleted {
		return nil, ierr.NewErrorf("tax rate %s not found", id).
			WithHint("Tax rate not found").
			Mark(ierr.ErrNotFound)
	}
	return copyTaxRate(t), nil
}

func (s *InMemoryTaxRateStore) List(ctx context.Context, filter *types.Filter) ([]*taxrate.TaxRate, error) {
	items, err := s.InMemoryStore.List(ctx, filter, func(ctx context.Context, t *taxrate.TaxRate, _ interface{}) bool {
		return t.CompanyID == types.GetCompanyID(ctx) && t.Status != types.StatusDeleted
	}, func(a, b *taxrate.TaxRate) bool {
		return a.Name < b.Name
	})
	if err != nil {
		return nil, err
	}
	out := make([]*taxrate.TaxRate, 0, len(items))
	for _, t := range items {
		out = append(out, copyTaxRate(t))
	}
	return out, nil
}

func (s *InMemoryTaxRateStore) Update(ctx context.Context, t *taxrate.TaxRate) error {
	return s.InMemoryStore.Update(ctx, t.ID, copyTaxRate(t))
}
