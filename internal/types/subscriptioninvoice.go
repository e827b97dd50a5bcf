package types

import (
	ierr "github.com/tagihin/tagihin/internal/errors"

	"github.com/samber/lo"
)

// SubscriptionInvoiceStatus is the lifecycle status of a subscription-billing
// ledger row. Paid is terminal: reconciliation never downgrades a paid row.
type SubscriptionInvoiceStatus string

const (
	SubscriptionInvoiceStatusDraft     SubscriptionInvoiceStatus = "draft"
	SubscriptionInvoiceStatusSent      SubscriptionInvoiceStatus = "sent"
	SubscriptionInvoiceStatusPaid      SubscriptionInvoiceStatus = "paid"
	SubscriptionInvoiceStatusOverdue   SubscriptionInvoiceStatus = "overdue"
	SubscriptionInvoiceStatusCancelled SubscriptionInvoiceStatus = "cancelled"
)

func (s SubscriptionInvoiceStatus) String() string {
	return string(s)
}

func (s SubscriptionInvoiceStatus) Validate() error {
	allowed := []SubscriptionInvoiceStatus{
		SubscriptionInvoiceStatusDraft,
		SubscriptionInvoiceStatusSent,
		SubscriptionInvoiceStatusPaid,
		SubscriptionInvoiceStatusOverdue,
		SubscriptionInvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription invoice status").
			WithHint("Please provide a valid subscription invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Midtrans transaction statuses we map from
const (
	MidtransStatusCapture    = "capture"
	MidtransStatusSettlement = "settlement"
	MidtransStatusPending    = "pending"
	MidtransStatusExpire     = "expire"
	MidtransStatusCancel     = "cancel"
	MidtransStatusDeny       = "deny"
	MidtransStatusFailure    = "failure"

	MidtransFraudAccept = "accept"
)

// SubscriptionInvoiceStatusFromTransaction maps a gateway transaction status
// pair to a ledger status. Anything unrecognized stays "sent" so a later,
// well-formed update can still move the row forward.
func SubscriptionInvoiceStatusFromTransaction(transactionStatus, fraudStatus string) SubscriptionInvoiceStatus {
	switch transactionStatus {
	case MidtransStatusCapture:
		if fraudStatus == MidtransFraudAccept {
			return SubscriptionInvoiceStatusPaid
		}
		return SubscriptionInvoiceStatusSent
	case MidtransStatusSettlement:
		return SubscriptionInvoiceStatusPaid
	case MidtransStatusPending:
		return SubscriptionInvoiceStatusSent
	case MidtransStatusExpire:
		return SubscriptionInvoiceStatusOverdue
	case MidtransStatusCancel, MidtransStatusDeny, MidtransStatusFailure:
		return SubscriptionInvoiceStatusCancelled
	default:
		return SubscriptionInvoiceStatusSent
	}
}
