package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/tagihin/tagihin/internal/api/dto"
	"github.com/tagihin/tagihin/internal/domain/billing"
	pdfdomain "github.com/tagihin/tagihin/internal/domain/pdf"
	"github.com/tagihin/tagihin/internal/domain/user"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/midtrans"
	"github.com/tagihin/tagihin/internal/types"
)

// midtransTimeLayout is the timestamp format Midtrans uses in transaction
// and settlement times. The values are WIB wall-clock times without an
// offset.
const midtransTimeLayout = "2006-01-02 15:04:05"

var midtransTimeZone = time.FixedZone("WIB", 7*60*60)

// BillingService manages the platform's own subscription billing: checkout,
// payment reconciliation, renewal auto-billing and receipts.
type BillingService interface {
	// CreateCheckout creates (or reuses) an open subscription invoice for
	// the requested plan and starts a Midtrans Snap transaction for it.
	CreateCheckout(ctx context.Context, req *dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error)

	// ConfirmPayment re-checks a payment against the Midtrans status API
	// and reconciles the invoice. Called when the customer returns from
	// the payment page.
	ConfirmPayment(ctx context.Context, req *dto.ConfirmPaymentRequest) (*dto.SubscriptionInvoiceResponse, error)

	// HandleNotification processes an incoming Midtrans webhook.
	HandleNotification(ctx context.Context, notification *midtrans.TransactionStatus) error

	// ListMyInvoices returns the current user's subscription invoices.
	ListMyInvoices(ctx context.Context, filter *types.SubscriptionInvoiceFilter) (*dto.ListSubscriptionInvoicesResponse, error)

	// ProcessAutoBilling creates renewal invoices for users whose plan
	// renews in the configured lead window. Idempotent per renewal date.
	ProcessAutoBilling(ctx context.Context, now time.Time) (*dto.AutoBillingResult, error)

	// DownloadReceipt renders a payment receipt PDF for a paid
	// subscription invoice owned by the current user.
	DownloadReceipt(ctx context.Context, id string) ([]byte, error)
}

type billingService struct {
	ServiceParams
	numbering NumberingService
	audit     AuditService
}

func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
		numbering:     NewNumberingService(params),
		audit:         NewAuditService(params),
	}
}

// orderIDSeq disambiguates payment attempts made within the same
// millisecond.
var orderIDSeq atomic.Uint64

// buildOrderID derives the Midtrans order id for a payment attempt. The
// timestamp plus sequence suffix makes retried attempts for the same
// invoice distinct.
func buildOrderID(invoiceID string, at time.Time) string {
	seq := orderIDSeq.Add(1) % 1000
	return fmt.Sprintf("SUB-%s-%s%03d%03d", invoiceID, at.Format("20060102150405"), at.Nanosecond()/int(time.Millisecond), seq)
}

func (s *billingService) CreateCheckout(ctx context.Context, req *dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	amount, ok := types.GetPlanPrice(req.PlanName, req.BillingCycle)
	if !ok || !amount.IsPositive() {
		return nil, ierr.NewError("plan is not billable").
			WithHint("The selected plan cannot be purchased").
			Mark(ierr.ErrValidation)
	}

	u, err := s.UserRepo.Get(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	periodStart := now
	periodEnd := periodStart.AddDate(0, 1, 0)
	if req.BillingCycle == types.BillingCycleYearly {
		periodEnd = periodStart.AddDate(1, 0, 0)
	}

	// Reuse the open invoice already billed for this period end rather
	// than piling up abandoned checkouts. A checkout abandoned on an
	// earlier day has a different period end and is left alone.
	inv, err := s.SubscriptionInvoiceRepo.FindOpenForUser(ctx, u.ID, req.PlanName, periodEnd)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		inv, err = s.newCheckoutInvoice(ctx, u, req, now, periodStart, periodEnd)
		if err != nil {
			return nil, err
		}
	} else {
		inv.Amount = amount
		inv.BillingCycle = req.BillingCycle
		inv.PeriodStart = periodStart
		inv.PeriodEnd = periodEnd
		inv.InvoiceDate = now
		inv.DueDate = periodEnd
	}

	orderID := buildOrderID(inv.ID, now)
	snapReq := &midtrans.SnapTransactionRequest{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:     orderID,
			GrossAmount: inv.Amount.IntPart(),
		},
		CustomerDetails: &midtrans.CustomerDetails{
			FirstName: u.Name,
			Email:     u.Email,
		},
		ItemDetails: []midtrans.ItemDetail{
			{
				ID:       inv.ID,
				Price:    inv.Amount.IntPart(),
				Quantity: 1,
				Name:     inv.Description,
			},
		},
	}
	if base := s.Config.Midtrans.CallbackBaseURL; base != "" {
		snapReq.Callbacks = &midtrans.Callbacks{
			Finish:   base + "/billing/finish",
			Unfinish: base + "/billing/unfinish",
			Error:    base + "/billing/error",
		}
	}

	snapResp, err := s.Midtrans.CreateSnapTransaction(ctx, snapReq)
	if err != nil {
		return nil, err
	}

	provider := "midtrans"
	inv.ExternalOrderID = &orderID
	inv.PaymentProvider = &provider
	inv.PaymentMethod = nil
	inv.TransactionID = nil
	inv.SnapToken = &snapResp.Token
	inv.RedirectURL = &snapResp.RedirectURL
	inv.InvoiceStatus = types.SubscriptionInvoiceStatusSent
	inv.UpdatedAt = now
	inv.UpdatedBy = u.ID
	if err := s.SubscriptionInvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, AuditActionCheckoutCreated, "subscription_invoice", inv.ID, types.Metadata{
		"order_id":      orderID,
		"plan_name":     req.PlanName.String(),
		"billing_cycle": req.BillingCycle.String(),
		"amount":        inv.Amount.String(),
	})

	return &dto.CheckoutResponse{
		SubscriptionInvoiceID: inv.ID,
		OrderID:               orderID,
		SnapToken:             snapResp.Token,
		RedirectURL:           snapResp.RedirectURL,
		Amount:                inv.Amount,
	}, nil
}

func (s *billingService) newCheckoutInvoice(ctx context.Context, u *user.User, req *dto.CreateCheckoutRequest, now, periodStart, periodEnd time.Time) (*billing.SubscriptionInvoice, error) {
	amount, _ := types.GetPlanPrice(req.PlanName, req.BillingCycle)

	number, err := s.numbering.NextSubscriptionInvoiceNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	renewal := periodEnd
	inv := &billing.SubscriptionInvoice{
		ID:                   types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION_INVOICE),
		UserID:               u.ID,
		InvoiceNumber:        number,
		Description:          fmt.Sprintf("%s plan subscription (%s)", req.PlanName, req.BillingCycle),
		PlanName:             req.PlanName,
		BillingCycle:         req.BillingCycle,
		Amount:               amount,
		PeriodStart:          periodStart,
		PeriodEnd:            periodEnd,
		InvoiceDate:          now,
		DueDate:              periodEnd,
		InvoiceStatus:        types.SubscriptionInvoiceStatusDraft,
		AutoGenerated:        false,
		BilledForRenewalDate: &renewal,
		BaseModel:            types.GetDefaultBaseModel(ctx),
	}
	inv.CompanyID = u.CompanyID

	if err := s.SubscriptionInvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *billingService) ConfirmPayment(ctx context.Context, req *dto.ConfirmPaymentRequest) (*dto.SubscriptionInvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.SubscriptionInvoiceRepo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	// An order that belongs to someone else is indistinguishable from a
	// missing one.
	if inv.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewErrorf("subscription invoice with order id %s not found", req.OrderID).
			WithHint("Order not found").
			Mark(ierr.ErrNotFound)
	}

	status, err := s.Midtrans.GetTransactionStatus(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	inv, err = s.applyTransaction(ctx, inv, status)
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, AuditActionPaymentConfirmed, "subscription_invoice", inv.ID, types.Metadata{
		"order_id":           req.OrderID,
		"transaction_status": status.TransactionStatus,
		"invoice_status":     inv.InvoiceStatus.String(),
	})

	return dto.ToSubscriptionInvoiceResponse(inv), nil
}

func (s *billingService) HandleNotification(ctx context.Context, notification *midtrans.TransactionStatus) error {
	if !s.Midtrans.VerifyNotificationSignature(notification) {
		return ierr.NewError("invalid webhook signature").
			WithHint("Invalid signature.").
			Mark(ierr.ErrSignatureInvalid)
	}

	inv, err := s.SubscriptionInvoiceRepo.GetByOrderID(ctx, notification.OrderID)
	if err != nil {
		return err
	}

	inv, err = s.applyTransaction(ctx, inv, notification)
	if err != nil {
		return err
	}

	s.audit.Log(ctx, AuditActionWebhookReceived, "subscription_invoice", inv.ID, types.Metadata{
		"order_id":           notification.OrderID,
		"transaction_status": notification.TransactionStatus,
		"fraud_status":       notification.FraudStatus,
		"invoice_status":     inv.InvoiceStatus.String(),
	})
	return nil
}

// applyTransaction reconciles a Midtrans transaction status against the
// invoice. Paid is sticky: a stale or out-of-order update can never move a
// settled invoice backwards.
func (s *billingService) applyTransaction(ctx context.Context, inv *billing.SubscriptionInvoice, status *midtrans.TransactionStatus) (*billing.SubscriptionInvoice, error) {
	newStatus := types.SubscriptionInvoiceStatusFromTransaction(status.TransactionStatus, status.FraudStatus)

	if inv.IsPaid() && newStatus != types.SubscriptionInvoiceStatusPaid {
		s.Logger.Warnw("ignoring status downgrade for paid subscription invoice",
			"subscription_invoice_id", inv.ID,
			"order_id", status.OrderID,
			"transaction_status", status.TransactionStatus,
		)
		return inv, nil
	}

	now := time.Now().UTC()
	becamePaid := newStatus == types.SubscriptionInvoiceStatusPaid && !inv.IsPaid()

	inv.InvoiceStatus = newStatus
	if status.TransactionID != "" {
		inv.TransactionID = &status.TransactionID
	}
	if status.PaymentType != "" {
		inv.PaymentMethod = &status.PaymentType
	}
	inv.PaymentPayload = types.Metadata{
		"order_id":           status.OrderID,
		"transaction_id":     status.TransactionID,
		"transaction_status": status.TransactionStatus,
		"fraud_status":       status.FraudStatus,
		"status_code":        status.StatusCode,
		"gross_amount":       status.GrossAmount,
		"payment_type":       status.PaymentType,
		"transaction_time":   status.TransactionTime,
		"settlement_time":    status.SettlementTime,
	}
	if becamePaid {
		paidAt := parseMidtransTime(status.SettlementTime, status.TransactionTime, now)
		inv.PaidAt = &paidAt
	}
	inv.UpdatedAt = now
	inv.UpdatedBy = types.GetUserID(ctx)

	if err := s.SubscriptionInvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	if becamePaid {
		if err := s.activatePlan(ctx, inv); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// activatePlan moves the paying user onto the invoice's plan and extends
// the renewal date to the end of the billed period.
func (s *billingService) activatePlan(ctx context.Context, inv *billing.SubscriptionInvoice) error {
	u, err := s.UserRepo.Get(ctx, inv.UserID)
	if err != nil {
		return err
	}

	renewsAt := inv.PeriodEnd
	u.PlanName = inv.PlanName
	u.PlanRenewsAt = &renewsAt
	u.UpdatedAt = time.Now().UTC()
	u.UpdatedBy = types.GetUserID(ctx)

	s.Logger.Infow("activating plan after payment",
		"user_id", u.ID,
		"plan_name", u.PlanName,
		"plan_renews_at", renewsAt,
	)
	return s.UserRepo.Update(ctx, u)
}

// parseMidtransTime picks the first parseable timestamp, falling back to
// the provided default.
func parseMidtransTime(candidates ...interface{}) time.Time {
	var fallback time.Time
	for _, c := range candidates {
		switch v := c.(type) {
		case string:
			if v == "" {
				continue
			}
			if t, err := time.ParseInLocation(midtransTimeLayout, v, midtransTimeZone); err == nil {
				return t.UTC()
			}
		case time.Time:
			fallback = v
		}
	}
	return fallback
}

func (s *billingService) ListMyInvoices(ctx context.Context, filter *types.SubscriptionInvoiceFilter) (*dto.ListSubscriptionInvoicesResponse, error) {
	if filter == nil {
		filter = &types.SubscriptionInvoiceFilter{}
	}
	filter.UserID = types.GetUserID(ctx)

	invoices, err := s.SubscriptionInvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SubscriptionInvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, dto.ToSubscriptionInvoiceResponse(inv))
	}

	resp := types.NewListResponse(items, len(items), filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *billingService) ProcessAutoBilling(ctx context.Context, now time.Time) (*dto.AutoBillingResult, error) {
	leadDays := s.Config.Billing.AutoBillLeadDays
	renewalDate := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, leadDays)

	users, err := s.UserRepo.FindRenewalsDue(ctx, renewalDate)
	if err != nil {
		return nil, err
	}

	result := &dto.AutoBillingResult{
		RenewalDate:     renewalDate.Format("2006-01-02"),
		UsersConsidered: len(users),
	}

	for _, u := range users {
		created, err := s.autoBillUser(ctx, u, renewalDate, now)
		if err != nil {
			result.Failed++
			s.Logger.Errorw("auto-billing failed for user",
				"user_id", u.ID,
				"renewal_date", result.RenewalDate,
				"error", err,
			)
			continue
		}
		if created {
			result.InvoicesCreated++
		} else {
			result.Skipped++
		}
	}

	s.audit.Log(ctx, AuditActionAutoBillingExecuted, "billing_run", result.RenewalDate, types.Metadata{
		"users_considered": result.UsersConsidered,
		"invoices_created": result.InvoicesCreated,
		"skipped":          result.Skipped,
		"failed":           result.Failed,
	})

	s.Logger.Infow("auto-billing run finished",
		"renewal_date", result.RenewalDate,
		"users_considered", result.UsersConsidered,
		"invoices_created", result.InvoicesCreated,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *billingService) autoBillUser(ctx context.Context, u *user.User, renewalDate, now time.Time) (bool, error) {
	if u.OnFreePlan() {
		return false, nil
	}

	exists, err := s.SubscriptionInvoiceRepo.ExistsForRenewal(ctx, u.ID, renewalDate)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	amount := types.PlanRenewalAmount(u.PlanName)
	if !amount.IsPositive() {
		return false, nil
	}

	ctx = types.SetCompanyID(ctx, u.CompanyID)

	number, err := s.numbering.NextSubscriptionInvoiceNumber(ctx, now)
	if err != nil {
		return false, err
	}

	renewal := renewalDate
	inv := &billing.SubscriptionInvoice{
		ID:                   types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION_INVOICE),
		UserID:               u.ID,
		InvoiceNumber:        number,
		Description:          fmt.Sprintf("%s plan renewal", u.PlanName),
		PlanName:             u.PlanName,
		BillingCycle:         types.BillingCycleMonthly,
		Amount:               amount,
		PeriodStart:          renewalDate.AddDate(0, -1, 0),
		PeriodEnd:            renewalDate,
		InvoiceDate:          now,
		DueDate:              renewalDate,
		InvoiceStatus:        types.SubscriptionInvoiceStatusSent,
		AutoGenerated:        true,
		BilledForRenewalDate: &renewal,
		BaseModel:            types.GetDefaultBaseModel(ctx),
	}
	inv.CompanyID = u.CompanyID

	if err := s.SubscriptionInvoiceRepo.Create(ctx, inv); err != nil {
		return false, err
	}
	return true, nil
}

func (s *billingService) DownloadReceipt(ctx context.Context, id string) ([]byte, error) {
	inv, err := s.SubscriptionInvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("subscription invoice belongs to another user").
			WithHint("You do not have access to this receipt").
			Mark(ierr.ErrPermissionDenied)
	}
	if !inv.IsPaid() {
		return nil, ierr.NewError("subscription invoice is not paid").
			WithHint("Receipts are only available for paid invoices").
			Mark(ierr.ErrInvalidOperation)
	}

	u, err := s.UserRepo.Get(ctx, inv.UserID)
	if err != nil {
		return nil, err
	}

	paidAt := time.Now().UTC()
	if inv.PaidAt != nil {
		paidAt = *inv.PaidAt
	}
	paymentMethod := ""
	if inv.PaymentMethod != nil {
		paymentMethod = *inv.PaymentMethod
	}
	orderID := ""
	if inv.ExternalOrderID != nil {
		orderID = *inv.ExternalOrderID
	}

	amount, _ := inv.Amount.Float64()
	data := &pdfdomain.ReceiptData{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		OrderID:       orderID,
		PlanName:      inv.PlanName.String(),
		Description:   inv.Description,
		Amount:        amount,
		Currency:      "IDR",
		PeriodStart:   pdfdomain.CustomTime{Time: inv.PeriodStart},
		PeriodEnd:     pdfdomain.CustomTime{Time: inv.PeriodEnd},
		PaidAt:        pdfdomain.CustomTime{Time: paidAt},
		PaymentMethod: paymentMethod,
		Issuer: &pdfdomain.IssuerInfo{
			Name: "Tagihin",
		},
		Payer: &pdfdomain.PayerInfo{
			Name:  u.Name,
			Email: u.Email,
		},
	}

	return s.PDFGenerator.RenderReceiptPdf(ctx, data)
}
