package client

import (
	"context"

	"github.com/tagihin/tagihin/internal/types"
)

// Repository defines the interface for client data access
type Repository interface {
	// Create creates a new client
	Create(ctx context.Context, client *Client) error

	// Get retrieves a client by ID
	Get(ctx context.Context, id string) (*Client, error)

	// List retrieves clients for the current company
	List(ctx context.Context, filter *types.Filter) ([]*Client, error)

	// Update persists changes to a client
	Update(ctx context.Context, client *Client) error
}
