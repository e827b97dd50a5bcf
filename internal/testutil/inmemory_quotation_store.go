package testutil

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/quotation"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

// InMemoryQuotationStore implements quotation.Repository
type InMemoryQuotationStore struct {
	*InMemoryStore[*quotation.Quotation]
}

// NewInMemoryQuotationStore creates a new in-memory quotation store
func NewInMemoryQuotationStore() *InMemoryQuotationStore {
	return &InMemoryQuotationStore{
		InMemoryStore: NewInMemoryStore[*quotation.Quotation](),
	}
}

func copyQuotation(q *quotation.Quotation) *quotation.Quotation {
	if q == nil {
		return nil
	}
	out := *q
	if q.InvoiceID != nil {
		id := *q.InvoiceID
		out.InvoiceID = &id
	}
	out.LineItems = make([]*quotation.LineItem, len(q.LineItems))
	for i, li := range q.LineItems {
		item := *li
		out.LineItems[i] = &item
	}
	return &out
}

func (s *InMemoryQuotationStore) CreateWithLineItems(ctx context.Context, q *quotation.Quotation) error {
	return s.InMemoryStore.Create(ctx, q.ID, copyQuotation(q))
}

func (s *InMemoryQuotationStore) Get(ctx context.Context, id string) (*quotation.Quotation, error) {
	q, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || q.CompanyID != types.GetCompanyID(ctx) || q.Status == types.StatusDeleted {
		return nil, ierr.NewErrorf("quotation %s not found", id).
			WithHint("Quotation not found").
			Mark(ierr.ErrNotFound)
	}
	return copyQuotation(q), nil
}

func quotationFilterFn(ctx context.Context, q *quotation.Quotation, filter interface{}) bool {
	if q.CompanyID != types.GetCompanyID(ctx) || q.Status == types.StatusDeleted {
		return false
	}
	f, ok := filter.(*types.QuotationFilter)
	if !ok || f == nil {
		return true
	}
	if f.Status != "" && q.QuotationStatus != f.Status {
		return false
	}
	if f.ClientID != "" && q.ClientID != f.ClientID {
		return false
	}
	return true
}

func quotationSortFn(a, b *quotation.Quotation) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

func (s *InMemoryQuotationStore) List(ctx context.Context, filter *types.QuotationFilter) ([]*quotation.Quotation, error) {
	items, err := s.InMemoryStore.List(ctx, filter, quotationFilterFn, quotationSortFn)
	if err != nil {
		return nil, err
	}
	out := make([]*quotation.Quotation, 0, len(items))
	for _, q := range items {
		out = append(out, copyQuotation(q))
	}
	return out, nil
}

func (s *InMemoryQuotationStore) Count(ctx context.Context, filter *types.QuotationFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, quotationFilterFn)
}

func (s *InMemoryQuotationStore) Update(ctx context.Context, q *quotation.Quotation) error {
	existing, err := s.InMemoryStore.Get(ctx, q.ID)
	if err != nil {
		return ierr.NewErrorf("quotation %s not found", q.ID).
			WithHint("Quotation not found").
			Mark(ierr.ErrNotFound)
	}

	updated := copyQuotation(q)
	if len(updated.LineItems) == 0 {
		updated.LineItems = copyQuotation(existing).LineItems
	}
	return s.InMemoryStore.Update(ctx, q.ID, updated)
}
