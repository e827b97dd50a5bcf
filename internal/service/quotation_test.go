package service

import (
	"testing"
	"time"

	"github.com/tagihin/tagihin/internal/api/dto"
	"github.com/tagihin/tagihin/internal/domain/client"
	"github.com/tagihin/tagihin/internal/domain/taxrate"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/testutil"
	"github.com/tagihin/tagihin/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QuotationServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  QuotationService
	testData struct {
		client  *client.Client
		taxRate *taxrate.TaxRate
	}
}

func TestQuotationService(t *testing.T) {
	suite.Run(t, new(QuotationServiceSuite))
}

func (s *QuotationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewQuotationService(newServiceParams(&s.BaseServiceTestSuite))
	s.setupTestData()
}

func (s *QuotationServiceSuite) setupTestData() {
	ctx := s.GetContext()

	s.testData.client = &client.Client{
		ID:        "client_1",
		Name:      "CV Berkah Abadi",
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().ClientRepo.Create(ctx, s.testData.client))

	s.testData.taxRate = &taxrate.TaxRate{
		ID:        "taxrate_1",
		Name:      "PPN",
		Rate:      decimal.NewFromInt(11),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	s.NoError(s.GetStores().TaxRateRepo.Create(ctx, s.testData.taxRate))
}

func (s *QuotationServiceSuite) createRequest() *dto.CreateQuotationRequest {
	return &dto.CreateQuotationRequest{
		ClientID: s.testData.client.ID,
		LineItems: []dto.CreateLineItemRequest{
			{
				Description: "Website development",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(5000000),
				TaxRateID:   lo.ToPtr(s.testData.taxRate.ID),
			},
		},
	}
}

func (s *QuotationServiceSuite) TestCreateQuotation() {
	resp, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	s.True(resp.Subtotal.Equal(decimal.NewFromInt(5000000)))
	s.True(resp.TaxAmount.Equal(decimal.NewFromInt(550000)))
	s.True(resp.Total.Equal(decimal.NewFromInt(5550000)))
	s.Equal(types.QuotationStatusDraft, resp.QuotationStatus)
	s.Nil(resp.InvoiceID)

	dateCode := types.DocumentDateCode(time.Now().UTC())
	s.Equal("QUO/"+dateCode+"/001", resp.QuotationNumber)

	// Validity defaults to thirty days after issue.
	s.Equal(resp.IssueDate.AddDate(0, 0, DefaultQuotationValidityDays), resp.ValidUntil)
}

func (s *QuotationServiceSuite) TestCreateQuotationUnknownClient() {
	req := s.createRequest()
	req.ClientID = "client_unknown"

	_, err := s.service.Create(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *QuotationServiceSuite) TestUpdateStatus() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	resp, err := s.service.UpdateStatus(s.GetContext(), created.ID, &dto.UpdateQuotationStatusRequest{
		Status: types.QuotationStatusSent,
	})
	s.NoError(err)
	s.Equal(types.QuotationStatusSent, resp.QuotationStatus)

	_, err = s.service.UpdateStatus(s.GetContext(), created.ID, &dto.UpdateQuotationStatusRequest{
		Status: types.QuotationStatus("converted"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *QuotationServiceSuite) TestConvertToInvoice() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	inv, err := s.service.ConvertToInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	s.Equal(s.testData.client.ID, inv.ClientID)
	s.NotNil(inv.QuotationID)
	s.Equal(created.ID, *inv.QuotationID)
	s.Len(inv.LineItems, 1)
	s.True(inv.LineItems[0].TaxRate.Equal(decimal.NewFromInt(11)))
	s.True(inv.Total.Equal(created.Total))

	dateCode := types.DocumentDateCode(time.Now().UTC())
	s.Equal("INV/"+dateCode+"/001", inv.InvoiceNumber)

	// The quotation is stamped with the invoice and accepted.
	q, err := s.service.Get(s.GetContext(), created.ID)
	s.NoError(err)
	s.NotNil(q.InvoiceID)
	s.Equal(inv.ID, *q.InvoiceID)
	s.Equal(types.QuotationStatusAccepted, q.QuotationStatus)
}

func (s *QuotationServiceSuite) TestConvertToInvoiceTwice() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	_, err = s.service.ConvertToInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.ConvertToInvoice(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *QuotationServiceSuite) TestUpdateStatusAfterConversion() {
	created, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	_, err = s.service.ConvertToInvoice(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.UpdateStatus(s.GetContext(), created.ID, &dto.UpdateQuotationStatusRequest{
		Status: types.QuotationStatusDeclined,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *QuotationServiceSuite) TestListQuotations() {
	_, err := s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)
	_, err = s.service.Create(s.GetContext(), s.createRequest())
	s.NoError(err)

	resp, err := s.service.List(s.GetContext(), &types.QuotationFilter{})
	s.NoError(err)
	s.Equal(2, resp.Pagination.Total)
	s.Len(resp.Items, 2)
}
