package quotation

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tagihin/tagihin/internal/types"
)

// Quotation is a price proposal issued to a client. Once accepted it can be
// converted into an invoice exactly once; InvoiceID records the conversion.
type Quotation struct {
	ID              string                `db:"id" json:"id"`
	QuotationNumber string                `db:"quotation_number" json:"quotation_number"`
	ClientID        string                `db:"client_id" json:"client_id"`
	IssueDate       time.Time             `db:"issue_date" json:"issue_date"`
	ValidUntil      time.Time             `db:"valid_until" json:"valid_until"`
	Subtotal        decimal.Decimal       `db:"subtotal" json:"subtotal"`
	TaxAmount       decimal.Decimal       `db:"tax_amount" json:"tax_amount"`
	Total           decimal.Decimal       `db:"total" json:"total"`
	QuotationStatus types.QuotationStatus `db:"quotation_status" json:"quotation_status"`
	InvoiceID       *string               `db:"invoice_id" json:"invoice_id,omitempty"`
	Notes           string                `db:"notes" json:"notes,omitempty"`
	types.BaseModel

	LineItems []*LineItem `db:"-" json:"line_items"`
}

// LineItem is a single row on a quotation.
type LineItem struct {
	ID          string          `db:"id" json:"id"`
	QuotationID string          `db:"quotation_id" json:"quotation_id"`
	ProductID   *string         `db:"product_id" json:"product_id,omitempty"`
	Description string          `db:"description" json:"description"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	TaxRateID   *string         `db:"tax_rate_id" json:"tax_rate_id,omitempty"`
	TaxRate     decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	types.BaseModel
}

// CalculateAmount computes the line amount as quantity times unit price.
func (li *LineItem) CalculateAmount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// TaxAmount computes the tax portion of the line amount.
func (li *LineItem) TaxAmount() decimal.Decimal {
	return li.CalculateAmount().Mul(li.TaxRate).Div(decimal.NewFromInt(100))
}

// CalculateTotals recomputes line amounts and the quotation subtotal, tax
// amount and total from the current line items.
func (q *Quotation) CalculateTotals() {
	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	for _, li := range q.LineItems {
		li.Amount = li.CalculateAmount()
		subtotal = subtotal.Add(li.Amount)
		taxTotal = taxTotal.Add(li.TaxAmount())
	}
	q.Subtotal = subtotal
	q.TaxAmount = taxTotal
	q.Total = subtotal.Add(taxTotal)
}

// IsConverted reports whether this quotation has already produced an invoice.
func (q *Quotation) IsConverted() bool {
	return q.InvoiceID != nil && *q.InvoiceID != ""
}
