package types

// Well-known per-company setting keys
const (
	SettingKeyInvoicePrefix   = "invoice_prefix"
	SettingKeyQuotationPrefix = "quotation_prefix"
	SettingKeyCompanyName     = "company_name"
	SettingKeyCompanyAddress  = "company_address"
)
