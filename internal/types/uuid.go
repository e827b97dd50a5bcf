package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inv_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	// Prefixes for all domains and entities

	UUID_PREFIX_COMPANY              = "comp"
	UUID_PREFIX_USER                 = "user"
	UUID_PREFIX_CLIENT               = "client"
	UUID_PREFIX_PRODUCT              = "prod"
	UUID_PREFIX_TAX_RATE             = "tax"
	UUID_PREFIX_BANK_ACCOUNT         = "bank"
	UUID_PREFIX_INVOICE              = "inv"
	UUID_PREFIX_INVOICE_LINE_ITEM    = "inv_line"
	UUID_PREFIX_QUOTATION            = "quot"
	UUID_PREFIX_QUOTATION_LINE_ITEM  = "quot_line"
	UUID_PREFIX_SUBSCRIPTION_INVOICE = "subinv"
	UUID_PREFIX_AUDIT_LOG            = "audit"
	UUID_PREFIX_SETTING              = "setting"
)
