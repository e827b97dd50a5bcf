package testutil

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/bankaccount"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

// InMemoryBankAccountStore implements bankaccount.Repository
type InMemoryBankAccountStore struct {
	*InMemoryStore[*bankaccount.BankAccount]
}

// NewInMemoryBankAccountStore creates a new in-memory bank account store
func NewInMemoryBankAccountStore() *InMemoryBankAccountStore {
	return &InMemoryBankAccountStore{
		InMemoryStore: NewInMemoryStore[*bankaccount.BankAccount](),
	}
}

func copyBankAccount(b *bankaccount.BankAccount) *bankaccount.BankAccount {
	if b == nil {
		return nil
	}
	out := *b
	return &out
}

func (s *InMemoryBankAccountStore) Create(ctx context.Context, b *bankaccount.BankAccount) error {
	return s.InMemoryStore.Create(ctx, b.ID, copyBankAccount(b))
}

func (s *InMemoryBankAccountStore) Get(ctx context.Context, id string) (*bankaccount.BankAccount, error) {
	b, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || b.CompanyID != types.GetCompanyID(ctx) || b.Status == types.StatusDeleted {
		return nil, ierr.NewErrorf("bank account %s not found", id).
			WithHint("Bank account not found").
			Mark(ierr.ErrNotFound)
	}
	return copyBankAccount(b), nil
}

func (s *InMemoryBankAccountStore) List(ctx context.Context, filter *types.Filter) ([]*bankaccount.BankAccount, error) {
	items, err := s.InMemoryStore.List(ctx, filter, func(ctx context.Context, b *bankaccount.BankAccount, _ interface{}) bool {
		return b.CompanyID == types.GetCompanyID(ctx) && b.Status != types.StatusDeleted
	}, func(a, b *bankaccount.BankAccount) bool {
		return a.BankName < b.BankName
	})
	if err != nil {
		return nil, err
	}
	out := make([]*bankaccount.BankAccount, 0, len(items))
	for _, b := range items {
		out = append(out, copyBankAccount(b))
	}
	return out, nil
}

func (s *InMemoryBankAccountStore) Update(ctx context.Context, b *bankaccount.BankAccount) error {
	return s.InMemoryStore.Update(ctx, b.ID, copyBankAccount(b))
}
