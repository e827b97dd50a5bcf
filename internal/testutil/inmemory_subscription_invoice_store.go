package testutil

import (
	"context"
	"time"

	"github.com/tagihin/tagihin/internal/domain/billing"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

// InMemorySubscriptionInvoiceStore implements billing.Repository
type InMemorySubscriptionInvoiceStore struct {
	*InMemoryStore[*billing.SubscriptionInvoice]
}

// NewInMemorySubscriptionInvoiceStore creates a new in-memory subscription invoice store
func NewInMemorySubscriptionInvoiceStore() *InMemorySubscriptionInvoiceStore {
	return &InMemorySubscriptionInvoiceStore{
		InMemoryStore: NewInMemoryStore[*billing.SubscriptionInvoice](),
	}
}

func copySubscriptionInvoice(inv *billing.SubscriptionInvoice) *billing.SubscriptionInvoice {
	if inv == nil {
		return nil
	}
	out := *inv
	out.ExternalOrderID = copyStringPtr(inv.ExternalOrderID)
	out.PaymentProvider = copyStringPtr(inv.PaymentProvider)
	out.SnapToken = copyStringPtr(inv.SnapToken)
	out.RedirectURL = copyStringPtr(inv.RedirectURL)
	out.TransactionID = copyStringPtr(inv.TransactionID)
	out.PaymentMethod = copyStringPtr(inv.PaymentMethod)
	out.PaidAt = copyTimePtr(inv.PaidAt)
	out.BilledForRenewalDate = copyTimePtr(inv.BilledForRenewalDate)
	if inv.PaymentPayload != nil {
		payload := make(types.Metadata, len(inv.PaymentPayload))
		for k, v := range inv.PaymentPayload {
			payload[k] = v
		}
		out.PaymentPayload = payload
	}
	return &out
}

func copyStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func (s *InMemorySubscriptionInvoiceStore) Create(ctx context.Context, inv *billing.SubscriptionInvoice) error {
	return s.InMemoryStore.Create(ctx, inv.ID, copySubscriptionInvoice(inv))
}

func (s *InMemorySubscriptionInvoiceStore) Get(ctx context.Context, id string) (*billing.SubscriptionInvoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("subscription invoice %s not found", id).
			WithHint("Subscription invoice not found").
			Mark(ierr.ErrNotFound)
	}
	return copySubscriptionInvoice(inv), nil
}

func (s *InMemorySubscriptionInvoiceStore) GetByOrderID(ctx context.Context, orderID string) (*billing.SubscriptionInvoice, error) {
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, inv *billing.SubscriptionInvoice, _ interface{}) bool {
		return inv.ExternalOrderID != nil && *inv.ExternalOrderID == orderID
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewErrorf("subscription invoice with order id %s not found", orderID).
			WithHint("Order not found").
			Mark(ierr.ErrNotFound)
	}
	return copySubscriptionInvoice(items[0]), nil
}

func (s *InMemorySubscriptionInvoiceStore) List(ctx context.Context, filter *types.SubscriptionInvoiceFilter) ([]*billing.SubscriptionInvoice, error) {
	items, err := s.InMemoryStore.List(ctx, filter, func(_ context.Context, inv *billing.SubscriptionInvoice, f interface{}) bool {
		sf, ok := f.(*types.SubscriptionInvoiceFilter)
		if !ok || sf == nil {
			return true
		}
		if sf.UserID != "" && inv.UserID != sf.UserID {
			return false
		}
		if sf.Status != "" && inv.InvoiceStatus != sf.Status {
			return false
		}
		return true
	}, func(a, b *billing.SubscriptionInvoice) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	out := make([]*billing.SubscriptionInvoice, 0, len(items))
	for _, inv := range items {
		out = append(out, copySubscriptionInvoice(inv))
	}
	return out, nil
}

func (s *InMemorySubscriptionInvoiceStore) Update(ctx context.Context, inv *billing.SubscriptionInvoice) error {
	return s.InMemoryStore.Update(ctx, inv.ID, copySubscriptionInvoice(inv))
}

func (s *InMemorySubscriptionInvoiceStore) FindOpenForUser(ctx context.Context, userID string, plan types.PlanName, renewalDate time.Time) (*billing.SubscriptionInvoice, error) {
	day := renewalDate.Format("2006-01-02")
	items, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, inv *billing.SubscriptionInvoice, _ interface{}) bool {
		return inv.UserID == userID && inv.PlanName == plan && inv.IsOpen() &&
			inv.BilledForRenewalDate != nil &&
			inv.BilledForRenewalDate.Format("2006-01-02") == day
	}, func(a, b *billing.SubscriptionInvoice) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewErrorf("no open subscription invoice for user %s", userID).
			WithHint("Subscription invoice not found").
			Mark(ierr.ErrNotFound)
	}
	return copySubscriptionInvoice(items[0]), nil
}

func (s *InMemorySubscriptionInvoiceStore) ExistsForRenewal(ctx context.Context, userID string, renewalDate time.Time) (bool, error) {
	day := renewalDate.Format("2006-01-02")
	count, err := s.InMemoryStore.Count(ctx, nil, func(_ context.Context, inv *billing.SubscriptionInvoice, _ interface{}) bool {
		return inv.UserID == userID &&
			inv.BilledForRenewalDate != nil &&
			inv.BilledForRenewalDate.Format("2006-01-02") == day
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
