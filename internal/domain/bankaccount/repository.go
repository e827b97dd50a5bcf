package bankaccount

import (
	"context"

	"github.com/tagihin/tagihin/internal/types"
)

// Repository defines the interface for bank account data access
type Repository interface {
	// Create creates a new bank account
	Create(ctx context.Context, account *BankAccount) error

	// Get retrieves a bank account by ID
	Get(ctx context.Context, id string) (*BankAccount, error)

	// List retrieves bank accounts for the current company
	List(ctx context.Context, filter *types.Filter) ([]*BankAccount, error)

	// Update persists changes to a bank account
	Update(ctx context.Context, account *BankAccount) error
}
