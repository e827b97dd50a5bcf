package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDocumentNumber(t *testing.T) {
	at := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	dateCode := DocumentDateCode(at)
	assert.Equal(t, "260309", dateCode)

	assert.Equal(t, "INV/260309/001", FormatDocumentNumber(DocumentPrefixInvoice, dateCode, 1))
	assert.Equal(t, "QUO/260309/042", FormatDocumentNumber(DocumentPrefixQuotation, dateCode, 42))
	assert.Equal(t, "SUB/260309/1000", FormatDocumentNumber(DocumentPrefixSubscriptionInvoice, dateCode, 1000))
}

func TestInvoiceStatusValidate(t *testing.T) {
	assert.NoError(t, InvoiceStatusDraft.Validate())
	assert.NoError(t, InvoiceStatusPaid.Validate())
	assert.Error(t, InvoiceStatus("void").Validate())
}

func TestQuotationStatusValidate(t *testing.T) {
	assert.NoError(t, QuotationStatusAccepted.Validate())
	assert.Error(t, QuotationStatus("converted").Validate())
}
