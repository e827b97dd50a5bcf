package bankaccount

import (
	"github.com/tagihin/tagihin/internal/types"
)

// BankAccount holds payment details printed on invoices.
type BankAccount struct {
	ID            string `db:"id" json:"id"`
	BankName      string `db:"bank_name" json:"bank_name"`
	AccountName   string `db:"account_name" json:"account_name"`
	AccountNumber string `db:"account_number" json:"account_number"`
	types.BaseModel
}
