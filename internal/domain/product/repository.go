package product

import (
	"context"

	"github.com/tagihin/tagihin/internal/types"
)

// Repository defines the interface for product data access
type Repository interface {
	// Create creates a new product
	Create(ctx context.Context, product *Product) error

	// Get retrieves a product by ID
	Get(ctx context.Context, id string) (*Product, error)

	// List retrieves products for the current company
	List(ctx context.Context, filter *types.Filter) ([]*Product, error)

	// Update persists changes to a product
	Update(ctx context.Context, product *Product) error
}
