package service

import (
	"testing"
	"time"

	"github.com/tagihin/tagihin/internal/api/dto"
	"github.com/tagihin/tagihin/internal/domain/bankaccount"
	"github.com/tagihin/tagihin/internal/domain/client"
	"github.com/tagihin/tagihin/internal/domain/product"
	"github.com/tagihin/tagihin/internal/domain/taxrate"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/testutil"
	"github.com/tagihin/tagihin/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// newServiceParams wires the in-memory stores and mocks of a base suite
// into a ServiceParams. Shared by every service test suite in this package.
func newServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		Cache:        s.GetCache(),
		Midtrans:     s.GetMidtrans(),
		PDFGenerator: s.GetPDFGenerator(),

		UserRepo:                stores.UserRepo,
		ClientRepo:              stores.ClientRepo,
		ProductRepo:             stores.ProductRepo,
		TaxRateRepo:             stores.TaxRateRepo,
		BankAccountRepo:         stores.BankAccountRepo,
		SettingsRepo:            stores.SettingsRepo,
		InvoiceRepo:             stores.InvoiceRepo,
		QuotationRepo:           stores.QuotationRepo,
		SubscriptionInvoiceRepo: stores.SubscriptionInvoiceRepo,
		AuditLogRepo:            stores.AuditLogRepo,
		SequenceRepo:            stores.SequenceRepo,
	}
}

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  InvoiceService
	testData struct {
		client      *client.Client
		bankAccount *bankaccount.BankAccount
		product     *product.Product
		taxRate     *taxrate.TaxRate
	}
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(newServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *InvoiceServiceSuite) setupTestData() {
	ctx := s.GetContext()

	s.testData.client = &client.Client{
		ID:        "client_1",
		Name:      "PT Maju Jaya",
		Email:     "finance@majujaya.co.id",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().ClientRepo.Create(ctx, s.testData.client))

	s.testData.bankAccount = &bankaccount.BankAccount{
		ID:            "bank_1",
		BankName:      "BCA",
		AccountName:   "PT Tagihin",
		AccountNumber: "1234567890",
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().BankAccountRepo.Create(ctx, s.testData.bankAccount))

	s.testData.product = &product.Product{
		ID:        "product_1",
		Name:      "Consulting",
		Unit:      "hour",
		UnitPrice: decimal.NewFromInt(150000),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().ProductRepo.Create(ctx, s.testData.product))

	s.testData.taxRate = &taxrate.TaxRate{
		ID:        "taxrate_1",
		Name:      "PPN",
		Rate:      decimal.NewFromInt(11),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().TaxRateRepo.Create(ctx, s.testData.taxRate))
}

func (s *InvoiceServiceSuite) createRequest() *dto.CreateInvoiceRequest {
	return &dto.CreateInvoiceRequest{
		ClientID:      s.testData.client.ID,
		BankAccountID: lo.ToPtr(s.testData.bankAccount.ID),
		LineItems: []dto.CreateLineItemRequest{
			{
				ProductID:   lo.ToPtr(s.testData.product.ID),
				Description: "Consulting services",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.NewFromInt(150000),
				TaxRateID:   lo.ToPtr(s.testData.taxRate.ID),
			},
			{
				Description: "Travel expenses",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(50000),
			},
		},
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	resp, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.NotNil(resp)

	// 2 x 150000 at 11% tax plus an untaxed 50000 line.
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(350000)), "subtotal %s", resp.Subtotal)
	s.True(resp.TaxAmount.Equal(decimal.NewFromInt(33000)), "tax %s", resp.TaxAmount)
	s.True(resp.Total.Equal(decimal.NewFromInt(383000)), "total %s", resp.Total)
	s.Equal(types.InvoiceStatusDraft, resp.InvoiceStatus)
	s.Len(resp.LineItems, 2)
	s.True(resp.LineItems[0].TaxRate.Equal(decimal.NewFromInt(11)))

	dateCode := types.DocumentDateCode(time.Now().UTC())
	s.Equal("INV/"+dateCode+"/001", resp.InvoiceNumber)

	// Due date defaults to seven days after issue.
	s.Equal(resp.IssueDate.AddDate(0, 0, DefaultInvoiceDueDays), resp.DueDate)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceSequentialNumbers() {
	first, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	second, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	dateCode := types.DocumentDateCode(time.Now().UTC())
	s.Equal("INV/"+dateCode+"/001", first.InvoiceNumber)
	s.Equal("INV/"+dateCode+"/002", second.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceCustomPrefix() {
	settingsService := NewSettingsService(newServiceParams(&s.BaseServiceTestSuite))
	_, err := settingsService.Update(s.GetContext(), &dto.UpdateSettingsRequest{
		Settings: map[string]string{types.SettingKeyInvoicePrefix: "FAK"},
	})
	s.NoError(err)

	resp, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	dateCode := types.DocumentDateCode(time.Now().UTC())
	s.Equal("FAK/"+dateCode+"/001", resp.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceUnknownClient() {
	req := s.createRequest()
	req.ClientID = "client_unknown"

	_, err := s.service.Create(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceForeignClient() {
	ctx := s.GetContext()
	foreign := &client.Client{
		ID:        "client_foreign",
		Name:      "Someone Else's Client",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	foreign.CompanyID = "company_other"
	s.NoError(s.GetStores().ClientRepo.Create(ctx, foreign))

	req := s.createRequest()
	req.ClientID = foreign.ID

	_, err := s.service.Create(ctx, req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceNoLineItems() {
	req := s.createRequest()
	req.LineItems = nil

	_, err := s.service.Create(s.GetContext(), req)
	s.Error(err)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceNegativeQuantity() {
	req := s.createRequest()
	req.LineItems[0].Quantity = decimal.NewFromInt(-1)

	_, err := s.service.Create(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceDueBeforeIssue() {
	now := time.Now().UTC()
	req := s.createRequest()
	req.IssueDate = lo.ToPtr(now)
	req.DueDate = lo.ToPtr(now.AddDate(0, 0, -1))

	_, err := s.service.Create(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestGetInvoice() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	got, err := s.service.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(created.InvoiceNumber, got.InvoiceNumber)
	s.Len(got.LineItems, 2)

	_, err = s.service.Get(s.GetContext(), "invoice_unknown")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestListInvoices() {
	_, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	_, err = s.service.MarkPaid(s.GetContext(), created.ID, nil)
	s.NoError(err)

	resp, err := s.service.List(s.GetContext(), &types.InvoiceFilter{})
	s.NoError(err)
	s.Equal(2, resp.Pagination.Total)
	s.Len(resp.Items, 2)

	paid, err := s.service.List(s.GetContext(), &types.InvoiceFilter{Status: types.InvoiceStatusPaid})
	s.NoError(err)
	s.Equal(1, paid.Pagination.Total)
	s.Len(paid.Items, 1)
	s.Equal(created.ID, paid.Items[0].ID)
}

func (s *InvoiceServiceSuite) TestMarkPaid() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	paidAt := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	resp, err := s.service.MarkPaid(s.GetContext(), created.ID, &dto.MarkInvoicePaidRequest{
		PaidAt: lo.ToPtr(paidAt),
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.InvoiceStatus)
	s.NotNil(resp.PaidAt)
	s.Equal(paidAt, *resp.PaidAt)
}

func (s *InvoiceServiceSuite) TestMarkPaidTwice() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	_, err = s.service.MarkPaid(s.GetContext(), created.ID, nil)
	s.NoError(err)

	_, err = s.service.MarkPaid(s.GetContext(), created.ID, nil)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}
