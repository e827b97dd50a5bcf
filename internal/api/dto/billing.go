package dto

import (
	"time"

	"github.com/tagihin/tagihin/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/tagihin/tagihin/internal/domain/billing"
	"github.com/tagihin/tagihin/internal/types"
)

// CreateCheckoutRequest starts a Midtrans payment for a plan upgrade or
// renewal.
type CreateCheckoutRequest struct {
	PlanName     types.PlanName     `json:"plan_name" validate:"required"`
	BillingCycle types.BillingCycle `json:"billing_cycle" validate:"required"`
}

// Validate validates the checkout request
func (r *CreateCheckoutRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.PlanName.Validate(); err != nil {
		return err
	}
	return r.BillingCycle.Validate()
}

// CheckoutResponse carries the Snap token the frontend needs to open the
// payment page.
type CheckoutResponse struct {
	SubscriptionInvoiceID string          `json:"subscription_invoice_id"`
	OrderID               string          `json:"order_id"`
	SnapToken             string          `json:"snap_token"`
	RedirectURL           string          `json:"redirect_url"`
	Amount                decimal.Decimal `json:"amount"`
}

// ConfirmPaymentRequest asks the server to re-check a payment's status with
// Midtrans after the customer returns from the payment page.
type ConfirmPaymentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// Validate validates the confirm payment request
func (r *ConfirmPaymentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// SubscriptionInvoiceResponse represents the subscription invoice response
// structure
type SubscriptionInvoiceResponse struct {
	ID            string                          `json:"id"`
	UserID        string                          `json:"user_id"`
	InvoiceNumber string                          `json:"invoice_number"`
	Description   string                          `json:"description"`
	PlanName      types.PlanName                  `json:"plan_name"`
	BillingCycle  types.BillingCycle              `json:"billing_cycle"`
	Amount        decimal.Decimal                 `json:"amount"`
	PeriodStart   time.Time                       `json:"period_start"`
	PeriodEnd     time.Time                       `json:"period_end"`
	InvoiceDate   time.Time                       `json:"invoice_date"`
	DueDate       time.Time                       `json:"due_date"`
	InvoiceStatus types.SubscriptionInvoiceStatus `json:"invoice_status"`
	OrderID       *string                         `json:"order_id,omitempty"`
	PaymentMethod *string                         `json:"payment_method,omitempty"`
	PaidAt        *time.Time                      `json:"paid_at,omitempty"`
	AutoGenerated bool                            `json:"auto_generated"`
	CreatedAt     time.Time                       `json:"created_at"`
}

// ToSubscriptionInvoiceResponse converts a domain subscription invoice to
// the response shape
func ToSubscriptionInvoiceResponse(inv *billing.SubscriptionInvoice) *SubscriptionInvoiceResponse {
	return &SubscriptionInvoiceResponse{
		ID:            inv.ID,
		UserID:        inv.UserID,
		InvoiceNumber: inv.InvoiceNumber,
		Description:   inv.Description,
		PlanName:      inv.PlanName,
		BillingCycle:  inv.BillingCycle,
		Amount:        inv.Amount,
		PeriodStart:   inv.PeriodStart,
		PeriodEnd:     inv.PeriodEnd,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		InvoiceStatus: inv.InvoiceStatus,
		OrderID:       inv.ExternalOrderID,
		PaymentMethod: inv.PaymentMethod,
		PaidAt:        inv.PaidAt,
		AutoGenerated: inv.AutoGenerated,
		CreatedAt:     inv.CreatedAt,
	}
}

// ListSubscriptionInvoicesResponse represents a paginated list of
// subscription invoices
type ListSubscriptionInvoicesResponse = types.ListResponse[*SubscriptionInvoiceResponse]

// AutoBillingResult summarizes one auto-billing run
type AutoBillingResult struct {
	RenewalDate     string `json:"renewal_date"`
	UsersConsidered int    `json:"users_considered"`
	InvoicesCreated int    `json:"invoices_created"`
	Skipped         int    `json:"skipped"`
	Failed          int    `json:"failed"`
}
