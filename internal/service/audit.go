package service

import (
	"context"
	"time"

	"github.com/tagihin/tagihin/internal/domain/auditlog"
	"github.com/tagihin/tagihin/internal/types"
)

// Audit actions recorded by the services in this package.
const (
	AuditActionInvoiceCreated      = "invoice.created"
	AuditActionInvoiceMarkedPaid   = "invoice.marked_paid"
	AuditActionQuotationCreated    = "quotation.created"
	AuditActionQuotationConverted  = "quotation.converted"
	AuditActionSettingsUpdated     = "settings.updated"
	AuditActionCheckoutCreated     = "midtrans.checkout.created"
	AuditActionPaymentConfirmed    = "midtrans.confirm.checked"
	AuditActionWebhookReceived     = "midtrans.webhook.received"
	AuditActionAutoBillingExecuted = "billing.auto_bill.executed"
)

// AuditService appends audit log entries. Writes are best effort: a failed
// audit write is logged and swallowed so it never fails the operation that
// triggered it.
type AuditService interface {
	Log(ctx context.Context, action, entityType, entityID string, details types.Metadata)
	List(ctx context.Context, filter *types.AuditLogFilter) ([]*auditlog.AuditLog, error)
}

type auditService struct {
	ServiceParams
}

func NewAuditService(params ServiceParams) AuditService {
	return &auditService{ServiceParams: params}
}

func (s *auditService) Log(ctx context.Context, action, entityType, entityID string, details types.Metadata) {
	entry := &auditlog.AuditLog{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_AUDIT_LOG),
		CompanyID:  types.GetCompanyID(ctx),
		UserID:     types.GetUserID(ctx),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  types.GetClientIP(ctx),
		UserAgent:  types.GetUserAgent(ctx),
		RequestID:  types.GetRequestID(ctx),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.AuditLogRepo.Create(ctx, entry); err != nil {
		s.Logger.Errorw("failed to write audit log",
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err,
		)
	}
}

func (s *auditService) List(ctx context.Context, filter *types.AuditLogFilter) ([]*auditlog.AuditLog, error) {
	return s.AuditLogRepo.List(ctx, filter)
}
