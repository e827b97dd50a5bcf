package user

import (
	"context"
	"time"
)

// Repository defines the interface for user data access
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update persists changes to a user
	Update(ctx context.Context, user *User) error

	// FindRenewalsDue retrieves users on a paid plan whose subscription
	// renews on the given date. Not company scoped; used by billing jobs.
	FindRenewalsDue(ctx context.Context, renewsAt time.Time) ([]*User, error)
}
