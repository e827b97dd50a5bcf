package taxrate

import (
	"github.com/shopspring/decimal"
	"github.com/tagihin/tagihin/internal/types"
)

// TaxRate is a named percentage applied to document line items.
type TaxRate struct {
	ID   string          `db:"id" json:"id"`
	Name string          `db:"name" json:"name"`
	Rate decimal.Decimal `db:"rate" json:"rate"` // percentage, 11 means 11%
	types.BaseModel
}
