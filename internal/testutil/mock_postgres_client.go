package testutil

import (
	"context"

	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/postgres"
)

// MockPostgresClient is a no-op IClient for service tests backed by
// in-memory stores. WithTx runs the function directly since the stores
// have no transaction semantics.
type MockPostgresClient struct {
	logger *logger.Logger
}

var _ postgres.IClient = (*MockPostgresClient)(nil)

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{logger: logger}
}

// GetQuerier returns nil; in-memory repositories never execute SQL
func (m *MockPostgresClient) GetQuerier(ctx context.Context) postgres.Querier {
	return nil
}

// WithTx executes the function without an actual transaction
func (m *MockPostgresClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
