package settings

import (
	"github.com/tagihin/tagihin/internal/types"
)

// Setting is a single company-scoped configuration entry. Keys are defined
// in the types package.
type Setting struct {
	ID    string `db:"id" json:"id"`
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
	types.BaseModel
}
