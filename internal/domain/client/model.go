package client

import (
	"github.com/tagihin/tagihin/internal/types"
)

// Client is a billing counterparty that invoices and quotations are issued to.
type Client struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Address string `db:"address" json:"address,omitempty"`
	TaxID   string `db:"tax_id" json:"tax_id,omitempty"`
	types.BaseModel
}
