package dto

import (
	"time"

	"github.com/tagihin/tagihin/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/tagihin/tagihin/internal/domain/invoice"
	"github.com/tagihin/tagihin/internal/types"
)

// CreateInvoiceRequest represents the request payload for creating an invoice
type CreateInvoiceRequest struct {
	ClientID      string                   `json:"client_id" validate:"required"`
	BankAccountID *string                  `json:"bank_account_id,omitempty"`
	IssueDate     *time.Time               `json:"issue_date,omitempty"`
	DueDate       *time.Time               `json:"due_date,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	LineItems     []CreateLineItemRequest  `json:"line_items" validate:"required,min=1,dive"`
}

// CreateLineItemRequest is a single line on an invoice or quotation create
// request.
type CreateLineItemRequest struct {
	ProductID   *string         `json:"product_id,omitempty"`
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
	TaxRateID   *string         `json:"tax_rate_id,omitempty"`
}

// Validate validates the create invoice request
func (r *CreateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// MarkInvoicePaidRequest marks an invoice as paid
type MarkInvoicePaidRequest struct {
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

// InvoiceResponse represents the invoice response structure
type InvoiceResponse struct {
	ID            string              `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	ClientID      string              `json:"client_id"`
	BankAccountID *string             `json:"bank_account_id,omitempty"`
	QuotationID   *string             `json:"quotation_id,omitempty"`
	IssueDate     time.Time           `json:"issue_date"`
	DueDate       time.Time           `json:"due_date"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxAmount     decimal.Decimal     `json:"tax_amount"`
	Total         decimal.Decimal     `json:"total"`
	InvoiceStatus types.InvoiceStatus `json:"invoice_status"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	LineItems     []LineItemResponse  `json:"line_items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// LineItemResponse represents a document line item response
type LineItemResponse struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRateID   *string         `json:"tax_rate_id,omitempty"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToInvoiceResponse converts a domain invoice to the response shape
func ToInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		BankAccountID: inv.BankAccountID,
		QuotationID:   inv.QuotationID,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		InvoiceStatus: inv.InvoiceStatus,
		PaidAt:        inv.PaidAt,
		Notes:         inv.Notes,
		LineItems:     make([]LineItemResponse, 0, len(inv.LineItems)),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	for _, li := range inv.LineItems {
		resp.LineItems = append(resp.LineItems, LineItemResponse{
			ID:          li.ID,
			ProductID:   li.ProductID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			TaxRateID:   li.TaxRateID,
			TaxRate:     li.TaxRate,
			Amount:      li.Amount,
		})
	}
	return resp
}

// ListInvoicesResponse represents a paginated list of invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]
