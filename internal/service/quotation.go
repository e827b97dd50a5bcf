package service

import (
	"context"
	"time"

	"github.com/tagihin/tagihin/internal/api/dto"
	"github.com/tagihin/tagihin/internal/domain/invoice"
	"github.com/tagihin/tagihin/internal/domain/quotation"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

// DefaultQuotationValidityDays is how long a quotation stays open when the
// request does not set a validity date.
const DefaultQuotationValidityDays = 30

// QuotationService manages quotations and their conversion into invoices.
type QuotationService interface {
	Create(ctx context.Context, req *dto.CreateQuotationRequest) (*dto.QuotationResponse, error)
	Get(ctx context.Context, id string) (*dto.QuotationResponse, error)
	List(ctx context.Context, filter *types.QuotationFilter) (*dto.ListQuotationsResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateQuotationStatusRequest) (*dto.QuotationResponse, error)

	// ConvertToInvoice creates an invoice from a quotation, copying its
	// line items. A quotation can be converted exactly once.
	ConvertToInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
}

type quotationService struct {
	ServiceParams
	numbering NumberingService
	audit     AuditService
}

func NewQuotationService(params ServiceParams) QuotationService {
	return &quotationService{
		ServiceParams: params,
		numbering:     NewNumberingService(params),
		audit:         NewAuditService(params),
	}
}

func (s *quotationService) Create(ctx context.Context, req *dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.ClientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}
	validUntil := issueDate.AddDate(0, 0, DefaultQuotationValidityDays)
	if req.ValidUntil != nil {
		validUntil = req.ValidUntil.UTC()
	}

	q := &quotation.Quotation{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTATION),
		ClientID:        req.ClientID,
		IssueDate:       issueDate,
		ValidUntil:      validUntil,
		QuotationStatus: types.QuotationStatusDraft,
		Notes:           req.Notes,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}

	lineItems, err := s.buildLineItems(ctx, q.ID, req.LineItems)
	if err != nil {
		return nil, err
	}
	q.LineItems = lineItems
	q.CalculateTotals()

	number, err := s.numbering.NextQuotationNumber(ctx, issueDate)
	if err != nil {
		return nil, err
	}
	q.QuotationNumber = number

	if err := s.QuotationRepo.CreateWithLineItems(ctx, q); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, AuditActionQuotationCreated, "quotation", q.ID, types.Metadata{
		"quotation_number": q.QuotationNumber,
		"client_id":        q.ClientID,
		"total":            q.Total.String(),
	})

	return dto.ToQuotationResponse(q), nil
}

func (s *quotationService) buildLineItems(ctx context.Context, quotationID string, reqs []dto.CreateLineItemRequest) ([]*quotation.LineItem, error) {
	items := make([]*quotation.LineItem, 0, len(reqs))
	for _, lr := range reqs {
		li := &quotation.LineItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTATION_LINE_ITEM),
			QuotationID: quotationID,
			ProductID:   lr.ProductID,
			Description: lr.Description,
			Quantity:    lr.Quantity,
			UnitPrice:   lr.UnitPrice,
			TaxRateID:   lr.TaxRateID,
			BaseModel:   types.GetDefaultBaseModel(ctx),
		}
		if lr.Quantity.IsNegative() || lr.UnitPrice.IsNegative() {
			return nil, ierr.NewError("negative quantity or unit price").
				WithHint("Quantities and unit prices must not be negative").
				Mark(ierr.ErrValidation)
		}
		if lr.ProductID != nil {
			if _, err := s.ProductRepo.Get(ctx, *lr.ProductID); err != nil {
				return nil, err
			}
		}
		if lr.TaxRateID != nil {
			tr, err := s.TaxRateRepo.Get(ctx, *lr.TaxRateID)
			if err != nil {
				return nil, err
			}
			li.TaxRate = tr.Rate
		}
		items = append(items, li)
	}
	return items, nil
}

func (s *quotationService) Get(ctx context.Context, id string) (*dto.QuotationResponse, error) {
	q, err := s.QuotationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToQuotationResponse(q), nil
}

func (s *quotationService) List(ctx context.Context, filter *types.QuotationFilter) (*dto.ListQuotationsResponse, error) {
	if filter == nil {
		filter = &types.QuotationFilter{}
	}

	quotations, err := s.QuotationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.QuotationRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		items = append(items, dto.ToQuotationResponse(q))
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *quotationService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateQuotationStatusRequest) (*dto.QuotationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q, err := s.QuotationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.IsConverted() {
		return nil, ierr.NewError("quotation already converted").
			WithHint("A converted quotation can no longer change status").
			Mark(ierr.ErrInvalidOperation)
	}

	q.QuotationStatus = req.Status
	q.UpdatedAt = time.Now().UTC()
	q.UpdatedBy = types.GetUserID(ctx)

	if err := s.QuotationRepo.Update(ctx, q); err != nil {
		return nil, err
	}
	return dto.ToQuotationResponse(q), nil
}

func (s *quotationService) ConvertToInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	q, err := s.QuotationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.IsConverted() {
		return nil, ierr.NewError("quotation already converted").
			WithHint("This quotation has already been converted to an invoice").
			WithReportableDetails(map[string]any{
				"invoice_id": *q.InvoiceID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		ClientID:      q.ClientID,
		QuotationID:   &q.ID,
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, DefaultInvoiceDueDays),
		InvoiceStatus: types.InvoiceStatusDraft,
		Notes:         q.Notes,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	for _, qli := range q.LineItems {
		inv.LineItems = append(inv.LineItems, &invoice.LineItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:   inv.ID,
			ProductID:   qli.ProductID,
			Description: qli.Description,
			Quantity:    qli.Quantity,
			UnitPrice:   qli.UnitPrice,
			TaxRateID:   qli.TaxRateID,
			TaxRate:     qli.TaxRate,
			BaseModel:   types.GetDefaultBaseModel(ctx),
		})
	}
	inv.CalculateTotals()

	number, err := s.numbering.NextInvoiceNumber(ctx, now)
	if err != nil {
		return nil, err
	}
	inv.InvoiceNumber = number

	// Create the invoice and stamp the quotation in one transaction so a
	// crash cannot leave the quotation convertible twice.
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.InvoiceRepo.CreateWithLineItems(ctx, inv); err != nil {
			return err
		}
		q.InvoiceID = &inv.ID
		q.QuotationStatus = types.QuotationStatusAccepted
		q.UpdatedAt = time.Now().UTC()
		q.UpdatedBy = types.GetUserID(ctx)
		return s.QuotationRepo.Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, AuditActionQuotationConverted, "quotation", q.ID, types.Metadata{
		"quotation_number": q.QuotationNumber,
		"invoice_id":       inv.ID,
		"invoice_number":   inv.InvoiceNumber,
	})

	return dto.ToInvoiceResponse(inv), nil
}
