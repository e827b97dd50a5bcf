package testutil

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/invoice"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	out.LineItems = make([]*invoice.LineItem, len(inv.LineItems))
	for i, li := range inv.LineItems {
		item := *li
		out.LineItems[i] = &item
	}
	return &out
}

func (s *InMemoryInvoiceStore) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || inv.CompanyID != types.GetCompanyID(ctx) || inv.Status == types.StatusDeleted {
		return nil, ierr.NewErrorf("invoice %s not found", id).
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func invoiceFilterFn(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
	if inv.CompanyID != types.GetCompanyID(ctx) || inv.Status == types.StatusDeleted {
		return false
	}
	f, ok := filter.(*types.InvoiceFilter)
	if !ok || f == nil {
		return true
	}
	if f.Status != "" && inv.InvoiceStatus != f.Status {
		return false
	}
	if f.ClientID != "" && inv.ClientID != f.ClientID {
		return false
	}
	return true
}

func invoiceSortFn(a, b *invoice.Invoice) bool {
	return a.CreatedAt.After(b.CreatedAt)
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	items, err := s.InMemoryStore.List(ctx, filter, invoiceFilterFn, invoiceSortFn)
	if err != nil {
		return nil, err
	}
	out := make([]*invoice.Invoice, 0, len(items))
	for _, inv := range items {
		out = append(out, copyInvoice(inv))
	}
	return out, nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, filter, invoiceFilterFn)
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	existing, err := s.InMemoryStore.Get(ctx, inv.ID)
	if err != nil {
		return ierr.NewErrorf("invoice %s not found", inv.ID).
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}

	// Header-only update; line items are immutable after creation.
	updated := copyInvoice(inv)
	if len(updated.LineItems) == 0 {
		updated.LineItems = copyInvoice(existing).LineItems
	}
	return s.InMemoryStore.Update(ctx, inv.ID, updated)
}
