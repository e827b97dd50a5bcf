package taxrate

import (
	"context"

	"github.com/tagihin/tagihin/internal/types"
)

// Repository defines the interface for tax rate data access
type Repository interface {
	// Create creates a new tax rate
	Create(ctx context.Context, taxRate *TaxRate) error

	// Get retrieves a tax rate by ID
	Get(ctx context.Context, id string) (*TaxRate, error)

	// List retrieves tax rates for the current company
	List(ctx context.Context, filter *types.Filter) ([]*TaxRate, error)

	// Update persists changes to a tax rate
	Update(ctx context.Context, taxRate *TaxRate) error
}
