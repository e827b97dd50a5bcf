package service

import (
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"testing"
	"time"

	"github.com/tagihin/tagihin/internal/api/dto"
	"github.com/tagihin/tagihin/internal/domain/billing"
	"github.com/tagihin/tagihin/internal/domain/user"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/midtrans"
	"github.com/tagihin/tagihin/internal/testutil"
	"github.com/tagihin/tagihin/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  BillingService
	testData struct {
		user *user.User
	}
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewBillingService(newServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *BillingServiceSuite) setupTestData() {
	ctx := s.GetContext()

	s.testData.user = &user.User{
		ID:        types.DefaultUserID,
		Name:      "Budi Santoso",
		Email:     "budi@example.com",
		PlanName:  types.PlanFree,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().UserRepo.Create(ctx, s.testData.user))

	s.GetHTTPClient().RegisterJSONResponse("/transactions", http.StatusCreated, map[string]string{
		"token":        "snap-token-1",
		"redirect_url": "https://app.sandbox.midtrans.com/snap/v4/redirection/snap-token-1",
	})
}

// signNotification computes the signature Midtrans would attach for the
// server key the test config uses.
func (s *BillingServiceSuite) signNotification(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + s.GetConfig().Midtrans.ServerKey))
	return hex.EncodeToString(sum[:])
}

func (s *BillingServiceSuite) checkout() *dto.CheckoutResponse {
	resp, err := s.service.CreateCheckout(s.GetContext(), &dto.CreateCheckoutRequest{
		PlanName:     types.PlanPro,
		BillingCycle: types.BillingCycleMonthly,
	})
	s.Require().NoError(err)
	return resp
}

func (s *BillingServiceSuite) TestCreateCheckout() {
	resp := s.checkout()

	s.Contains(resp.OrderID, "SUB-"+resp.SubscriptionInvoiceID+"-")
	s.Equal("snap-token-1", resp.SnapToken)
	s.Contains(resp.RedirectURL, "snap-token-1")
	s.True(resp.Amount.Equal(decimal.NewFromInt(99000)))

	inv, err := s.GetStores().SubscriptionInvoiceRepo.GetByOrderID(s.GetContext(), resp.OrderID)
	s.NoError(err)
	s.Equal(types.SubscriptionInvoiceStatusSent, inv.InvoiceStatus)
	s.Equal(types.PlanPro, inv.PlanName)
	s.False(inv.AutoGenerated)
	s.Equal(inv.PeriodStart.AddDate(0, 1, 0), inv.PeriodEnd)
	s.Equal(inv.PeriodEnd, inv.DueDate)
	s.Require().NotNil(inv.BilledForRenewalDate)
	s.Equal(inv.PeriodEnd, *inv.BilledForRenewalDate)

	dateCode := types.DocumentDateCode(time.Now().UTC())
	s.Equal("SUB/"+dateCode+"/001", inv.InvoiceNumber)
}

func (s *BillingServiceSuite) TestCreateCheckoutYearly() {
	resp, err := s.service.CreateCheckout(s.GetContext(), &dto.CreateCheckoutRequest{
		PlanName:     types.PlanBasic,
		BillingCycle: types.BillingCycleYearly,
	})
	s.NoError(err)
	s.True(resp.Amount.Equal(decimal.NewFromInt(360000)))

	inv, err := s.GetStores().SubscriptionInvoiceRepo.GetByOrderID(s.GetContext(), resp.OrderID)
	s.NoError(err)
	s.Equal(inv.PeriodStart.AddDate(1, 0, 0), inv.PeriodEnd)
}

func (s *BillingServiceSuite) TestCreateCheckoutReusesOpenInvoice() {
	first := s.checkout()
	second := s.checkout()

	s.Equal(first.SubscriptionInvoiceID, second.SubscriptionInvoiceID)
	s.NotEqual(first.OrderID, second.OrderID)

	list, err := s.service.ListMyInvoices(s.GetContext(), nil)
	s.NoError(err)
	s.Len(list.Items, 1)
}

func (s *BillingServiceSuite) TestCreateCheckoutRefreshesReusedInvoice() {
	first := s.checkout()

	inv, err := s.GetStores().SubscriptionInvoiceRepo.GetByOrderID(s.GetContext(), first.OrderID)
	s.Require().NoError(err)
	inv.Amount = decimal.NewFromInt(1)
	inv.DueDate = inv.DueDate.AddDate(0, 0, -5)
	s.NoError(s.GetStores().SubscriptionInvoiceRepo.Update(s.GetContext(), inv))

	second := s.checkout()
	s.Equal(first.SubscriptionInvoiceID, second.SubscriptionInvoiceID)

	inv, err = s.GetStores().SubscriptionInvoiceRepo.GetByOrderID(s.GetContext(), second.OrderID)
	s.NoError(err)
	s.True(inv.Amount.Equal(decimal.NewFromInt(99000)))
	s.Equal(inv.PeriodEnd, inv.DueDate)
}

func (s *BillingServiceSuite) TestCreateCheckoutIgnoresStaleOpenInvoice() {
	ctx := s.GetContext()

	// A checkout abandoned 20 days ago covers a period ending 10 days
	// from now. Buying today must bill a fresh full period, not resell
	// the leftover one.
	staleStart := time.Now().UTC().AddDate(0, 0, -20)
	staleEnd := staleStart.AddDate(0, 1, 0)
	stale := &billing.SubscriptionInvoice{
		ID:                   "subinv_stale",
		UserID:               s.testData.user.ID,
		InvoiceNumber:        "SUB/260811/001",
		PlanName:             types.PlanPro,
		BillingCycle:         types.BillingCycleMonthly,
		Amount:               decimal.NewFromInt(99000),
		PeriodStart:          staleStart,
		PeriodEnd:            staleEnd,
		InvoiceDate:          staleStart,
		DueDate:              staleEnd,
		InvoiceStatus:        types.SubscriptionInvoiceStatusSent,
		ExternalOrderID:      lo.ToPtr("SUB-subinv_stale-20260811100000000"),
		BilledForRenewalDate: &staleEnd,
		BaseModel:            types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().SubscriptionInvoiceRepo.Create(ctx, stale))

	resp := s.checkout()
	s.NotEqual(stale.ID, resp.SubscriptionInvoiceID)

	err := s.service.HandleNotification(ctx, &midtrans.TransactionStatus{
		OrderID:           resp.OrderID,
		TransactionID:     "txn-fresh",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "99000.00",
		PaymentType:       "qris",
		SignatureKey:      s.signNotification(resp.OrderID, "200", "99000.00"),
	})
	s.NoError(err)

	inv, err := s.GetStores().SubscriptionInvoiceRepo.GetByOrderID(ctx, resp.OrderID)
	s.NoError(err)

	u, err := s.GetStores().UserRepo.Get(ctx, s.testData.user.ID)
	s.NoError(err)
	s.Require().NotNil(u.PlanRenewsAt)
	s.Equal(inv.PeriodEnd, *u.PlanRenewsAt)
	s.True(u.PlanRenewsAt.After(time.Now().UTC().AddDate(0, 0, 25)))
}

func (s *BillingServiceSuite) TestCreateCheckoutFreePlan() {
	_, err := s.service.CreateCheckout(s.GetContext(), &dto.CreateCheckoutRequest{
		PlanName:     types.PlanFree,
		BillingCycle: types.BillingCycleMonthly,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BillingServiceSuite) TestCreateCheckoutUnknownPlan() {
	_, err := s.service.CreateCheckout(s.GetContext(), &dto.CreateCheckoutRequest{
		PlanName:     types.PlanName("Custom"),
		BillingCycle: types.BillingCycleMonthly,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *BillingServiceSuite) TestConfirmPaymentSettlement() {
	checkout := s.checkout()

	s.GetHTTPClient().RegisterJSONResponse("/status", http.StatusOK, map[string]string{
		"order_id":           checkout.OrderID,
		"transaction_id":     "txn-1",
		"transaction_status": "settlement",
		"status_code":        "200",
		"gross_amount":       "99000.00",
		"payment_type":       "qris",
		"settlement_time":    "2026-03-09 14:30:00",
	})

	resp, err := s.service.ConfirmPayment(s.GetContext(), &dto.ConfirmPaymentRequest{OrderID: checkout.OrderID})
	s.NoError(err)
	s.Equal(types.SubscriptionInvoiceStatusPaid, resp.InvoiceStatus)
	s.NotNil(resp.PaidAt)
	// 14:30 WIB is 07:30 UTC.
	s.Equal(time.Date(2026, 3, 9, 7, 30, 0, 0, time.UTC), *resp.PaidAt)
	s.Equal("qris", *resp.PaymentMethod)

	// Payment activates the plan and pushes the renewal to the period end.
	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.testData.user.ID)
	s.NoError(err)
	s.Equal(types.PlanPro, u.PlanName)
	s.NotNil(u.PlanRenewsAt)
	s.Equal(resp.PeriodEnd, *u.PlanRenewsAt)
}

func (s *BillingServiceSuite) TestConfirmPaymentPending() {
	checkout := s.checkout()

	s.GetHTTPClient().RegisterJSONResponse("/status", http.StatusOK, map[string]string{
		"order_id":           checkout.OrderID,
		"transaction_status": "pending",
		"status_code":        "201",
		"gross_amount":       "99000.00",
	})

	resp, err := s.service.ConfirmPayment(s.GetContext(), &dto.ConfirmPaymentRequest{OrderID: checkout.OrderID})
	s.NoError(err)
	s.Equal(types.SubscriptionInvoiceStatusSent, resp.InvoiceStatus)
	s.Nil(resp.PaidAt)

	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.testData.user.ID)
	s.NoError(err)
	s.Equal(types.PlanFree, u.PlanName)
}

func (s *BillingServiceSuite) TestConfirmPaymentForeignOrder() {
	ctx := s.GetContext()
	inv := &billing.SubscriptionInvoice{
		ID:              "subinv_other",
		UserID:          "user_other",
		InvoiceNumber:   "SUB/260309/099",
		PlanName:        types.PlanBasic,
		BillingCycle:    types.BillingCycleMonthly,
		Amount:          decimal.NewFromInt(39000),
		PeriodStart:     time.Now().UTC(),
		PeriodEnd:       time.Now().UTC().AddDate(0, 1, 0),
		InvoiceStatus:   types.SubscriptionInvoiceStatusSent,
		ExternalOrderID: lo.ToPtr("SUB-subinv_other-20260309100000000"),
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().SubscriptionInvoiceRepo.Create(ctx, inv))

	_, err := s.service.ConfirmPayment(ctx, &dto.ConfirmPaymentRequest{OrderID: *inv.ExternalOrderID})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *BillingServiceSuite) TestHandleNotificationSettlement() {
	checkout := s.checkout()

	err := s.service.HandleNotification(s.GetContext(), &midtrans.TransactionStatus{
		OrderID:           checkout.OrderID,
		TransactionID:     "txn-1",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "99000.00",
		PaymentType:       "bank_transfer",
		SettlementTime:    "2026-03-09 14:30:00",
		SignatureKey:      s.signNotification(checkout.OrderID, "200", "99000.00"),
	})
	s.NoError(err)

	inv, err := s.GetStores().SubscriptionInvoiceRepo.GetByOrderID(s.GetContext(), checkout.OrderID)
	s.NoError(err)
	s.Equal(types.SubscriptionInvoiceStatusPaid, inv.InvoiceStatus)
	s.Require().NotNil(inv.PaymentProvider)
	s.Equal("midtrans", *inv.PaymentProvider)
	s.Equal("settlement", inv.PaymentPayload["transaction_status"])

	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.testData.user.ID)
	s.NoError(err)
	s.Equal(types.PlanPro, u.PlanName)
}

func (s *BillingServiceSuite) TestHandleNotificationInvalidSignature() {
	checkout := s.checkout()

	err := s.service.HandleNotification(s.GetContext(), &midtrans.TransactionStatus{
		OrderID:           checkout.OrderID,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "99000.00",
		SignatureKey:      "deadbeef",
	})
	s.Error(err)
	s.True(ierr.IsSignatureInvalid(err))

	inv, err := s.GetStores().SubscriptionInvoiceRepo.GetByOrderID(s.GetContext(), checkout.OrderID)
	s.NoError(err)
	s.Equal(types.SubscriptionInvoiceStatusSent, inv.InvoiceStatus)
}

func (s *BillingServiceSuite) TestHandleNotificationUnknownOrder() {
	err := s.service.HandleNotification(s.GetContext(), &midtrans.TransactionStatus{
		OrderID:           "SUB-missing-20260309100000000",
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "99000.00",
		SignatureKey:      s.signNotification("SUB-missing-20260309100000000", "200", "99000.00"),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *BillingServiceSuite) TestPaidStatusIsSticky() {
	checkout := s.checkout()

	err := s.service.HandleNotification(s.GetContext(), &midtrans.TransactionStatus{
		OrderID:           checkout.OrderID,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "99000.00",
		SettlementTime:    "2026-03-09 14:30:00",
		SignatureKey:      s.signNotification(checkout.OrderID, "200", "99000.00"),
	})
	s.NoError(err)

	// A late cancel must not move the settled invoice backwards.
	err = s.service.HandleNotification(s.GetContext(), &midtrans.TransactionStatus{
		OrderID:           checkout.OrderID,
		TransactionStatus: "cancel",
		StatusCode:        "202",
		GrossAmount:       "99000.00",
		SignatureKey:      s.signNotification(checkout.OrderID, "202", "99000.00"),
	})
	s.NoError(err)

	inv, err := s.GetStores().SubscriptionInvoiceRepo.GetByOrderID(s.GetContext(), checkout.OrderID)
	s.NoError(err)
	s.Equal(types.SubscriptionInvoiceStatusPaid, inv.InvoiceStatus)

	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.testData.user.ID)
	s.NoError(err)
	s.Equal(types.PlanPro, u.PlanName)
}

func (s *BillingServiceSuite) TestProcessAutoBilling() {
	ctx := s.GetContext()
	now := time.Now().UTC()
	renewalDate := now.Truncate(24 * time.Hour).AddDate(0, 0, s.GetConfig().Billing.AutoBillLeadDays)

	due := &user.User{
		ID:           "user_due",
		Name:         "Siti Rahma",
		Email:        "siti@example.com",
		PlanName:     types.PlanPro,
		PlanRenewsAt: lo.ToPtr(renewalDate),
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().UserRepo.Create(ctx, due))

	alreadyBilled := &user.User{
		ID:           "user_billed",
		Name:         "Agus Wijaya",
		Email:        "agus@example.com",
		PlanName:     types.PlanBasic,
		PlanRenewsAt: lo.ToPtr(renewalDate),
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().UserRepo.Create(ctx, alreadyBilled))
	s.NoError(s.GetStores().SubscriptionInvoiceRepo.Create(ctx, &billing.SubscriptionInvoice{
		ID:                   "subinv_existing",
		UserID:               alreadyBilled.ID,
		InvoiceNumber:        "SUB/260309/050",
		PlanName:             types.PlanBasic,
		BillingCycle:         types.BillingCycleMonthly,
		Amount:               decimal.NewFromInt(39000),
		PeriodStart:          renewalDate.AddDate(0, -1, 0),
		PeriodEnd:            renewalDate,
		InvoiceStatus:        types.SubscriptionInvoiceStatusSent,
		AutoGenerated:        true,
		BilledForRenewalDate: lo.ToPtr(renewalDate),
		BaseModel:            types.GetDefaultBaseModel(ctx),
	}))

	// The suite's default user stays on the free plan and must not be billed.

	result, err := s.service.ProcessAutoBilling(ctx, now)
	s.NoError(err)
	s.Equal(2, result.UsersConsidered)
	s.Equal(1, result.InvoicesCreated)
	s.Equal(1, result.Skipped)
	s.Equal(0, result.Failed)

	invoices, err := s.GetStores().SubscriptionInvoiceRepo.List(ctx, &types.SubscriptionInvoiceFilter{UserID: due.ID})
	s.NoError(err)
	s.Require().Len(invoices, 1)

	inv := invoices[0]
	s.Equal(types.SubscriptionInvoiceStatusSent, inv.InvoiceStatus)
	s.True(inv.AutoGenerated)
	s.True(inv.Amount.Equal(decimal.NewFromInt(99000)))
	s.Equal(types.BillingCycleMonthly, inv.BillingCycle)
	s.Equal(renewalDate, inv.PeriodEnd)
	s.Equal(renewalDate.AddDate(0, -1, 0), inv.PeriodStart)
	s.Equal(renewalDate, inv.DueDate)
	s.Require().NotNil(inv.BilledForRenewalDate)
	s.Equal(renewalDate, *inv.BilledForRenewalDate)
}

func (s *BillingServiceSuite) TestProcessAutoBillingIsIdempotent() {
	ctx := s.GetContext()
	now := time.Now().UTC()
	renewalDate := now.Truncate(24 * time.Hour).AddDate(0, 0, s.GetConfig().Billing.AutoBillLeadDays)

	due := &user.User{
		ID:           "user_due",
		Name:         "Siti Rahma",
		Email:        "siti@example.com",
		PlanName:     types.PlanPro,
		PlanRenewsAt: lo.ToPtr(renewalDate),
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().UserRepo.Create(ctx, due))

	first, err := s.service.ProcessAutoBilling(ctx, now)
	s.NoError(err)
	s.Equal(1, first.InvoicesCreated)

	second, err := s.service.ProcessAutoBilling(ctx, now)
	s.NoError(err)
	s.Equal(0, second.InvoicesCreated)
	s.Equal(1, second.Skipped)

	invoices, err := s.GetStores().SubscriptionInvoiceRepo.List(ctx, &types.SubscriptionInvoiceFilter{UserID: due.ID})
	s.NoError(err)
	s.Len(invoices, 1)
}

func (s *BillingServiceSuite) TestListMyInvoices() {
	checkout := s.checkout()

	// Another user's invoice must never appear in the listing.
	s.NoError(s.GetStores().SubscriptionInvoiceRepo.Create(s.GetContext(), &billing.SubscriptionInvoice{
		ID:            "subinv_other",
		UserID:        "user_other",
		InvoiceNumber: "SUB/260309/099",
		PlanName:      types.PlanBasic,
		BillingCycle:  types.BillingCycleMonthly,
		Amount:        decimal.NewFromInt(39000),
		PeriodStart:   time.Now().UTC(),
		PeriodEnd:     time.Now().UTC().AddDate(0, 1, 0),
		InvoiceStatus: types.SubscriptionInvoiceStatusSent,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}))

	list, err := s.service.ListMyInvoices(s.GetContext(), nil)
	s.NoError(err)
	s.Require().Len(list.Items, 1)
	s.Equal(checkout.SubscriptionInvoiceID, list.Items[0].ID)
}

func (s *BillingServiceSuite) TestDownloadReceipt() {
	checkout := s.checkout()

	err := s.service.HandleNotification(s.GetContext(), &midtrans.TransactionStatus{
		OrderID:           checkout.OrderID,
		TransactionStatus: "settlement",
		StatusCode:        "200",
		GrossAmount:       "99000.00",
		PaymentType:       "qris",
		SettlementTime:    "2026-03-09 14:30:00",
		SignatureKey:      s.signNotification(checkout.OrderID, "200", "99000.00"),
	})
	s.NoError(err)

	data, err := s.service.DownloadReceipt(s.GetContext(), checkout.SubscriptionInvoiceID)
	s.NoError(err)
	s.NotEmpty(data)

	receipt := s.GetPDFGenerator().LastReceipt
	s.Require().NotNil(receipt)
	s.Equal(checkout.OrderID, receipt.OrderID)
	s.Equal(types.PlanPro.String(), receipt.PlanName)
}

func (s *BillingServiceSuite) TestDownloadReceiptNotOwner() {
	ctx := s.GetContext()
	s.NoError(s.GetStores().SubscriptionInvoiceRepo.Create(ctx, &billing.SubscriptionInvoice{
		ID:            "subinv_other",
		UserID:        "user_other",
		InvoiceNumber: "SUB/260309/099",
		PlanName:      types.PlanBasic,
		BillingCycle:  types.BillingCycleMonthly,
		Amount:        decimal.NewFromInt(39000),
		PeriodStart:   time.Now().UTC(),
		PeriodEnd:     time.Now().UTC().AddDate(0, 1, 0),
		InvoiceStatus: types.SubscriptionInvoiceStatusPaid,
		PaidAt:        lo.ToPtr(time.Now().UTC()),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}))

	_, err := s.service.DownloadReceipt(ctx, "subinv_other")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *BillingServiceSuite) TestDownloadReceiptUnpaid() {
	checkout := s.checkout()

	_, err := s.service.DownloadReceipt(s.GetContext(), checkout.SubscriptionInvoiceID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}
