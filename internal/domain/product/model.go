package product

import (
	"github.com/shopspring/decimal"
	"github.com/tagihin/tagihin/internal/types"
)

// Product is a sellable item or service with a default unit price.
type Product struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description,omitempty"`
	Unit        string          `db:"unit" json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	types.BaseModel
}
