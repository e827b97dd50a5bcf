package quotation

import (
	"context"

	"github.com/tagihin/tagihin/internal/types"
)

// Repository defines the interface for quotation data access
type Repository interface {
	// CreateWithLineItems creates a new quotation along with its line items
	CreateWithLineItems(ctx context.Context, quotation *Quotation) error

	// Get retrieves a quotation by ID including its line items
	Get(ctx context.Context, id string) (*Quotation, error)

	// List retrieves quotations based on filter criteria
	List(ctx context.Context, filter *types.QuotationFilter) ([]*Quotation, error)

	// Count counts quotations based on filter criteria
	Count(ctx context.Context, filter *types.QuotationFilter) (int, error)

	// Update persists changes to a quotation header
	Update(ctx context.Context, quotation *Quotation) error
}
