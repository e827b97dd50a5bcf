package invoice

import (
	"context"

	"github.com/tagihin/tagihin/internal/types"
)

// Repository defines the interface for invoice data access
type Repository interface {
	// CreateWithLineItems creates a new invoice along with its line items
	CreateWithLineItems(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID including its line items
	Get(ctx context.Context, id string) (*Invoice, error)

	// List retrieves invoices based on filter criteria
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)

	// Count counts invoices based on filter criteria
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)

	// Update persists changes to an invoice header
	Update(ctx context.Context, invoice *Invoice) error
}
