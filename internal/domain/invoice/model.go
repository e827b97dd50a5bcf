package invoice

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tagihin/tagihin/internal/types"
)

// Invoice is a billing document issued to a client. Totals are always
// derived from the line items, never set directly.
type Invoice struct {
	ID            string              `db:"id" json:"id"`
	InvoiceNumber string              `db:"invoice_number" json:"invoice_number"`
	ClientID      string              `db:"client_id" json:"client_id"`
	BankAccountID *string             `db:"bank_account_id" json:"bank_account_id,omitempty"`
	QuotationID   *string             `db:"quotation_id" json:"quotation_id,omitempty"`
	IssueDate     time.Time           `db:"issue_date" json:"issue_date"`
	DueDate       time.Time           `db:"due_date" json:"due_date"`
	Subtotal      decimal.Decimal     `db:"subtotal" json:"subtotal"`
	TaxAmount     decimal.Decimal     `db:"tax_amount" json:"tax_amount"`
	Total         decimal.Decimal     `db:"total" json:"total"`
	InvoiceStatus types.InvoiceStatus `db:"invoice_status" json:"invoice_status"`
	PaidAt        *time.Time          `db:"paid_at" json:"paid_at,omitempty"`
	Notes         string              `db:"notes" json:"notes,omitempty"`
	types.BaseModel

	LineItems []*LineItem `db:"-" json:"line_items"`
}

// LineItem is a single billed row on an invoice.
type LineItem struct {
	ID          string          `db:"id" json:"id"`
	InvoiceID   string          `db:"invoice_id" json:"invoice_id"`
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

// CalculateTotals recomputes line amounts and the invoice subtotal, tax
// amount and total from the current line items.
func (i *Invoice) CalculateTotals() {
	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	for _, li := range i.LineItems {
		li.Amount = li.CalculateAmount()
		subtotal = subtotal.Add(li.Amount)
		taxTotal = taxTotal.Add(li.TaxAmount())
	}
	i.Subtotal = subtotal
	i.TaxAmount = taxTotal
	i.Total = subtotal.Add(taxTotal)
}

// IsPaid reports whether the invoice has been settled.
func (i *Invoice) IsPaid() bool {
	return i.InvoiceStatus == types.InvoiceStatusPaid
}
