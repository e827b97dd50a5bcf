package settings

import (
	"context"
)

// Repository defines the interface for settings data access
type Repository interface {
	// Get retrieves a setting by key for the current company
	Get(ctx context.Context, key string) (*Setting, error)

	// List retrieves all settings for the current company
	List(ctx context.Context) ([]*Setting, error)

	// Upsert creates or updates a setting for the current company
	Upsert(ctx context.Context, setting *Setting) error
}
