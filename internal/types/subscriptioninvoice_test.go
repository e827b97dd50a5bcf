package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionInvoiceStatusFromTransaction(t *testing.T) {
	tests := []struct {
		name              string
		transactionStatus string
		fraudStatus       string
		want              SubscriptionInvoiceStatus
	}{
		{
			name:              "capture accepted is paid",
			transactionStatus: MidtransStatusCapture,
			fraudStatus:       MidtransFraudAccept,
			want:              SubscriptionInvoiceStatusPaid,
		},
		{
			name:              "capture under fraud review stays sent",
			transactionStatus: MidtransStatusCapture,
			fraudStatus:       "challenge",
			want:              SubscriptionInvoiceStatusSent,
		},
		{
			name:              "settlement is paid",
			transactionStatus: MidtransStatusSettlement,
			want:              SubscriptionInvoiceStatusPaid,
		},
		{
			name:              "pending stays sent",
			transactionStatus: MidtransStatusPending,
			want:              SubscriptionInvoiceStatusSent,
		},
		{
			name:              "expire is overdue",
			transactionStatus: MidtransStatusExpire,
			want:              SubscriptionInvoiceStatusOverdue,
		},
		{
			name:              "cancel is cancelled",
			transactionStatus: MidtransStatusCancel,
			want:              SubscriptionInvoiceStatusCancelled,
		},
		{
			name:              "deny is cancelled",
			transactionStatus: MidtransStatusDeny,
			want:              SubscriptionInvoiceStatusCancelled,
		},
		{
			name:              "failure is cancelled",
			transactionStatus: MidtransStatusFailure,
			want:              SubscriptionInvoiceStatusCancelled,
		},
		{
			name:              "unknown status stays sent",
			transactionStatus: "refund",
			want:              SubscriptionInvoiceStatusSent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubscriptionInvoiceStatusFromTransaction(tt.transactionStatus, tt.fraudStatus)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubscriptionInvoiceStatusValidate(t *testing.T) {
	assert.NoError(t, SubscriptionInvoiceStatusPaid.Validate())
	assert.NoError(t, SubscriptionInvoiceStatusOverdue.Validate())
	assert.Error(t, SubscriptionInvoiceStatus("refunded").Validate())
}
