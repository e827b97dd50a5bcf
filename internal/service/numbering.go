package service

import (
	"context"
	"time"

	"github.com/tagihin/tagihin/internal/types"
)

// NumberingService allocates document numbers of the form PREFIX/YYMMDD/NNN.
// Invoice and quotation prefixes are per-company settings; subscription
// invoices always draw from a single platform-wide SUB series so numbers
// stay unique across companies.
type NumberingService interface {
	NextInvoiceNumber(ctx context.Context, at time.Time) (string, error)
	NextQuotationNumber(ctx context.Context, at time.Time) (string, error)
	NextSubscriptionInvoiceNumber(ctx context.Context, at time.Time) (string, error)
}

type numberingService struct {
	ServiceParams
	settings SettingsService
}

func NewNumberingService(params ServiceParams) NumberingService {
	return &numberingService{
		ServiceParams: params,
		settings:      NewSettingsService(params),
	}
}

func (s *numberingService) NextInvoiceNumber(ctx context.Context, at time.Time) (string, error) {
	prefix, err := s.settings.GetValue(ctx, types.SettingKeyInvoicePrefix, types.DocumentPrefixInvoice)
	if err != nil {
		return "", err
	}
	return s.next(ctx, types.GetCompanyID(ctx), prefix, at)
}

func (s *numberingService) NextQuotationNumber(ctx context.Context, at time.Time) (string, error) {
	prefix, err := s.settings.GetValue(ctx, types.SettingKeyQuotationPrefix, types.DocumentPrefixQuotation)
	if err != nil {
		return "", err
	}
	return s.next(ctx, types.GetCompanyID(ctx), prefix, at)
}

func (s *numberingService) NextSubscriptionInvoiceNumber(ctx context.Context, at time.Time) (string, error) {
	// Platform series, empty company id on purpose.
	return s.next(ctx, "", types.DocumentPrefixSubscriptionInvoice, at)
}

func (s *numberingService) next(ctx context.Context, companyID, prefix string, at time.Time) (string, error) {
	dateCode := types.DocumentDateCode(at)
	seq, err := s.SequenceRepo.Next(ctx, companyID, prefix, dateCode)
	if err != nil {
		return "", err
	}
	return types.FormatDocumentNumber(prefix, dateCode, seq), nil
}
