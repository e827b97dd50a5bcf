package auditlog

import (
	"context"

	"github.com/tagihin/tagihin/internal/types"
)

// Repository defines the interface for audit log data access
type Repository interface {
	// Create appends a new audit log entry
	Create(ctx context.Context, log *AuditLog) error

	// List retrieves audit log entries based on filter criteria
	List(ctx context.Context, filter *types.AuditLogFilter) ([]*AuditLog, error)
}
