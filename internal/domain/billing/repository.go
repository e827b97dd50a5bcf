package billing

import (
	"context"
	"time"

	"github.com/tagihin/tagihin/internal/types"
)

// Repository defines the interface for subscription invoice data access.
// Subscription invoices are user scoped rather than company scoped; webhook
// lookups by order id run without tenant context.
type Repository interface {
	// Create creates a new subscription invoice
	Create(ctx context.Context, invoice *SubscriptionInvoice) error

	// Get retrieves a subscription invoice by ID
	Get(ctx context.Context, id string) (*SubscriptionInvoice, error)

	// GetByOrderID retrieves a subscription invoice by its Midtrans order id
	GetByOrderID(ctx context.Context, orderID string) (*SubscriptionInvoice, error)

	// List retrieves subscription invoices based on filter criteria
	List(ctx context.Context, filter *types.SubscriptionInvoiceFilter) ([]*SubscriptionInvoice, error)

	// Update persists changes to a subscription invoice
	Update(ctx context.Context, invoice *SubscriptionInvoice) error

	// FindOpenForUser retrieves the newest unpaid invoice for a user with
	// the given plan, billed for the given renewal date, if any.
	FindOpenForUser(ctx context.Context, userID string, plan types.PlanName, renewalDate time.Time) (*SubscriptionInvoice, error)

	// ExistsForRenewal reports whether an invoice already exists for the
	// user and renewal date, regardless of its status.
	ExistsForRenewal(ctx context.Context, userID string, renewalDate time.Time) (bool, error)
}
