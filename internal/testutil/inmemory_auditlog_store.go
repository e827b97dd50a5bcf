package testutil

import (
	"context"

	"github.com/tagihin/tagihin/internal/domain/auditlog"
	"github.com/tagihin/tagihin/internal/types"
)

// InMemoryAuditLogStore implements auditlog.Repository
type InMemoryAuditLogStore struct {
	*InMemoryStore[*auditlog.AuditLog]
}

// NewInMemoryAuditLogStore creates a new in-memory audit log store
func NewInMemoryAuditLogStore() *InMemoryAuditLogStore {
	return &InMemoryAuditLogStore{
		InMemoryStore: NewInMemoryStore[*auditlog.AuditLog](),
	}
}

func (s *InMemoryAuditLogStore) Create(ctx context.Context, log *auditlog.AuditLog) error {
	return s.InMemoryStore.Create(ctx, log.ID, log)
}

func (s *InMemoryAuditLogStore) List(ctx context.Context, filter *types.AuditLogFilter) ([]*auditlog.AuditLog, error) {
	return s.InMemoryStore.List(ctx, filter, func(ctx context.Context, log *auditlog.AuditLog, f interface{}) bool {
		if log.CompanyID != types.GetCompanyID(ctx) {
			return false
		}
		af, ok := f.(*types.AuditLogFilter)
		if !ok || af == nil {
			return true
		}
		if af.Action != "" && log.Action != af.Action {
			return false
		}
		if af.EntityType != "" && log.EntityType != af.EntityType {
			return false
		}
		if af.EntityID != "" && log.EntityID != af.EntityID {
			return false
		}
		if af.UserID != "" && log.UserID != af.UserID {
			return false
		}
		return true
	}, func(a, b *auditlog.AuditLog) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
}
