package types

import (
	"fmt"
	"time"

	ierr "github.com/tagihin/tagihin/internal/errors"

	"github.com/samber/lo"
)

// InvoiceStatus is the lifecycle status of a commercial invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// QuotationStatus is the lifecycle status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusDeclined QuotationStatus = "declined"
)

func (s QuotationStatus) String() string {
	return string(s)
}

func (s QuotationStatus) Validate() error {
	allowed := []QuotationStatus{
		QuotationStatusDraft,
		QuotationStatusSent,
		QuotationStatusAccepted,
		QuotationStatusDeclined,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid quotation status").
			WithHint("Please provide a valid quotation status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Default document number prefixes. Invoice and quotation prefixes are
// per-company settings; subscription invoices always use the global SUB series.
const (
	DocumentPrefixInvoice             = "INV"
	DocumentPrefixQuotation           = "QUO"
	DocumentPrefixSubscriptionInvoice = "SUB"
)

// DocumentDateCode returns the YYMMDD date code used in document numbers
func DocumentDateCode(t time.Time) string {
	return t.Format("060102")
}

// FormatDocumentNumber renders a document number as PREFIX/YYMMDD/NNN
// with the sequence zero-padded to three digits.
func FormatDocumentNumber(prefix, dateCode string, seq int64) string {
	return fmt.Sprintf("%s/%s/%03d", prefix, dateCode, seq)
}
