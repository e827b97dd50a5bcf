package dto

import (
	"time"

	"github.com/tagihin/tagihin/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/tagihin/tagihin/internal/domain/quotation"
	"github.com/tagihin/tagihin/internal/types"
)

// CreateQuotationRequest represents the request payload for creating a quotation
type CreateQuotationRequest struct {
	ClientID   string                  `json:"client_id" validate:"required"`
	IssueDate  *time.Time              `json:"issue_date,omitempty"`
	ValidUntil *time.Time              `json:"valid_until,omitempty"`
	Notes      string                  `json:"notes,omitempty"`
	LineItems  []CreateLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

// Validate validates the create quotation request
func (r *CreateQuotationRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// UpdateQuotationStatusRequest changes the lifecycle status of a quotation
type UpdateQuotationStatusRequest struct {
	Status types.QuotationStatus `json:"status" validate:"required"`
}

// Validate validates the status update request
func (r *UpdateQuotationStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Status.Validate()
}

// QuotationResponse represents the quotation response structure
type QuotationResponse struct {
	ID              string                `json:"id"`
	QuotationNumber string                `json:"quotation_number"`
	ClientID        string                `json:"client_id"`
	IssueDate       time.Time             `json:"issue_date"`
	ValidUntil      time.Time             `json:"valid_until"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	TaxAmount       decimal.Decimal       `json:"tax_amount"`
	Total           decimal.Decimal       `json:"total"`
	QuotationStatus types.QuotationStatus `json:"quotation_status"`
	InvoiceID       *string               `json:"invoice_id,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	LineItems       []LineItemResponse    `json:"line_items"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ToQuotationResponse converts a domain quotation to the response shape
func ToQuotationResponse(q *quotation.Quotation) *QuotationResponse {
	resp := &QuotationResponse{
		ID:              q.ID,
		QuotationNumber: q.QuotationNumber,
		ClientID:        q.ClientID,
		IssueDate:       q.IssueDate,
		ValidUntil:      q.ValidUntil,
		Subtotal:        q.Subtotal,
		TaxAmount:       q.TaxAmount,
		Total:           q.Total,
		QuotationStatus: q.QuotationStatus,
		InvoiceID:       q.InvoiceID,
		Notes:           q.Notes,
		LineItems:       make([]LineItemResponse, 0, len(q.LineItems)),
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
	for _, li := range q.LineItems {
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

// ListQuotationsResponse represents a paginated list of quotations
type ListQuotationsResponse = types.ListResponse[*QuotationResponse]
