package types

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Filter
	Status   InvoiceStatus `json:"status,omitempty" form:"status"`
	ClientID string        `json:"client_id,omitempty" form:"client_id"`
}

// QuotationFilter narrows quotation listings.
type QuotationFilter struct {
	Filter
	Status   QuotationStatus `json:"status,omitempty" form:"status"`
	ClientID string          `json:"client_id,omitempty" form:"client_id"`
}

// SubscriptionInvoiceFilter narrows subscription invoice listings.
type SubscriptionInvoiceFilter struct {
	Filter
	UserID string                    `json:"user_id,omitempty" form:"user_id"`
	Status SubscriptionInvoiceStatus `json:"status,omitempty" form:"status"`
}

// AuditLogFilter narrows audit log listings.
type AuditLogFilter struct {
	Filter
	Action     string `json:"action,omitempty" form:"action"`
	EntityType string `json:"entity_type,omitempty" form:"entity_type"`
	EntityID   string `json:"entity_id,omitempty" form:"entity_id"`
	UserID     string `json:"user_id,omitempty" form:"user_id"`
}
