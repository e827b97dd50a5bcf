package service

import (
	"context"
	"time"

	"github.com/tagihin/tagihin/internal/api/dto"
	"github.com/tagihin/tagihin/internal/domain/invoice"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/types"
)

// DefaultInvoiceDueDays is how long a client has to pay when the request
// does not set a due date.
const DefaultInvoiceDueDays = 7

// InvoiceService manages client-facing invoices.
type InvoiceService interface {
	Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	Get(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	List(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	MarkPaid(ctx context.Context, id string, req *dto.MarkInvoicePaidRequest) (*dto.InvoiceResponse, error)
}

type invoiceService struct {
	ServiceParams
	numbering NumberingService
	audit     AuditService
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
		numbering:     NewNumberingService(params),
		audit:         NewAuditService(params),
	}
}

func (s *invoiceService) Create(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Ownership checks happen through the company-scoped repositories; a
	// foreign id simply comes back as not found.
	if _, err := s.ClientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, err
	}
	if req.BankAccountID != nil {
		if _, err := s.BankAccountRepo.Get(ctx, *req.BankAccountID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = req.IssueDate.UTC()
	}
	dueDate := issueDate.AddDate(0, 0, DefaultInvoiceDueDays)
	if req.DueDate != nil {
		dueDate = req.DueDate.UTC()
	}
	if dueDate.Before(issueDate) {
		return nil, ierr.NewError("due date before issue date").
			WithHint("Due date must not be before the issue date").
			Mark(ierr.ErrValidation)
	}

	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		ClientID:      req.ClientID,
		BankAccountID: req.BankAccountID,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		InvoiceStatus: types.InvoiceStatusDraft,
		Notes:         req.Notes,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	lineItems, err := s.buildLineItems(ctx, inv.ID, req.LineItems)
	if err != nil {
		return nil, err
	}
	inv.LineItems = lineItems
	inv.CalculateTotals()

	number, err := s.numbering.NextInvoiceNumber(ctx, issueDate)
	if err != nil {
		return nil, err
	}
	inv.InvoiceNumber = number

	if err := s.InvoiceRepo.CreateWithLineItems(ctx, inv); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, AuditActionInvoiceCreated, "invoice", inv.ID, types.Metadata{
		"invoice_number": inv.InvoiceNumber,
		"client_id":      inv.ClientID,
		"total":          inv.Total.String(),
	})

	return dto.ToInvoiceResponse(inv), nil
}

func (s *invoiceService) buildLineItems(ctx context.Context, invoiceID string, reqs []dto.CreateLineItemRequest) ([]*invoice.LineItem, error) {
	items := make([]*invoice.LineItem, 0, len(reqs))
	for _, lr := range reqs {
		li := &invoice.LineItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:   invoiceID,
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

func (s *invoiceService) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToInvoiceResponse(inv), nil
}

func (s *invoiceService) List(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, dto.ToInvoiceResponse(inv))
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, id string, req *dto.MarkInvoicePaidRequest) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.IsPaid() {
		return nil, ierr.NewError("invoice already paid").
			WithHint("This invoice has already been marked as paid").
			Mark(ierr.ErrInvalidOperation)
	}

	paidAt := time.Now().UTC()
	if req != nil && req.PaidAt != nil {
		paidAt = req.PaidAt.UTC()
	}

	inv.InvoiceStatus = types.InvoiceStatusPaid
	inv.PaidAt = &paidAt
	inv.UpdatedAt = time.Now().UTC()
	inv.UpdatedBy = types.GetUserID(ctx)

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, AuditActionInvoiceMarkedPaid, "invoice", inv.ID, types.Metadata{
		"invoice_number": inv.InvoiceNumber,
		"paid_at":        paidAt.Format(time.RFC3339),
	})

	return dto.ToInvoiceResponse(inv), nil
}
