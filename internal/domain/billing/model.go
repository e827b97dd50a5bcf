package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tagihin/tagihin/internal/types"
)

// SubscriptionInvoice is a platform-issued bill for a user's subscription
// plan. It is created either at checkout or by the auto-billing job, and is
// reconciled against Midtrans by order id.
type SubscriptionInvoice struct {
	ID            string                          `db:"id" json:"id"`
	UserID        string                          `db:"user_id" json:"user_id"`
	InvoiceNumber string                          `db:"invoice_number" json:"invoice_number"`
	Description   string                          `db:"description" json:"description"`
	PlanName      types.PlanName                  `db:"plan_name" json:"plan_name"`
	BillingCycle  types.BillingCycle              `db:"billing_cycle" json:"billing_cycle"`
	Amount        decimal.Decimal                 `db:"amount" json:"amount"`
	PeriodStart   time.Time                       `db:"period_start" json:"period_start"`
	PeriodEnd     time.Time                       `db:"period_end" json:"period_end"`
	InvoiceDate   time.Time                       `db:"invoice_date" json:"invoice_date"`
	DueDate       time.Time                       `db:"due_date" json:"due_date"`
	InvoiceStatus types.SubscriptionInvoiceStatus `db:"invoice_status" json:"invoice_status"`

	// Midtrans reconciliation state. ExternalOrderID is set when a payment
	// attempt is initiated and is unique across the platform.
	ExternalOrderID *string        `db:"external_order_id" json:"external_order_id,omitempty"`
	PaymentProvider *string        `db:"payment_provider" json:"payment_provider,omitempty"`
	SnapToken       *string        `db:"snap_token" json:"snap_token,omitempty"`
	RedirectURL     *string        `db:"redirect_url" json:"redirect_url,omitempty"`
	TransactionID   *string        `db:"transaction_id" json:"transaction_id,omitempty"`
	PaymentMethod   *string        `db:"payment_method" json:"payment_method,omitempty"`
	PaymentPayload  types.Metadata `db:"payment_payload" json:"payment_payload,omitempty"`
	PaidAt          *time.Time     `db:"paid_at" json:"paid_at,omitempty"`

	// Auto-billing bookkeeping. BilledForRenewalDate dedupes the renewal
	// job; at most one invoice exists per (user, renewal date).
	AutoGenerated        bool       `db:"auto_generated" json:"auto_generated"`
	BilledForRenewalDate *time.Time `db:"billed_for_renewal_date" json:"billed_for_renewal_date,omitempty"`

	types.BaseModel
}

// IsPaid reports whether the invoice has been settled.
func (s *SubscriptionInvoice) IsPaid() bool {
	return s.InvoiceStatus == types.SubscriptionInvoiceStatusPaid
}

// IsOpen reports whether the invoice can still be paid.
func (s *SubscriptionInvoice) IsOpen() bool {
	switch s.InvoiceStatus {
	case types.SubscriptionInvoiceStatusDraft,
		types.SubscriptionInvoiceStatusSent,
		types.SubscriptionInvoiceStatusOverdue:
		return true
	default:
		return false
	}
}
