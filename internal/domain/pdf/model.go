package pdf

import (
	"encoding/json"
	"time"
)

// ReceiptData is the data model for subscription payment receipt PDFs.
type ReceiptData struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	OrderID       string     `json:"order_id"`
	PlanName      string     `json:"plan_name"`
	Description   string     `json:"description"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	PeriodStart   CustomTime `json:"period_start"`
	PeriodEnd     CustomTime `json:"period_end"`
	PaidAt        CustomTime `json:"paid_at"`
	PaymentMethod string     `json:"payment_method,omitempty"`

	Issuer *IssuerInfo `json:"issuer"`
	Payer  *PayerInfo  `json:"payer"`
}

// IssuerInfo identifies the party issuing the receipt.
type IssuerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// PayerInfo identifies the paying account holder.
type PayerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type CustomTime struct {
	time.Time
}

func (ct CustomTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(ct.Format("2006-01-02")) // Format to YYYY-MM-DD
}
