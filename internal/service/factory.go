package service

import (
	"github.com/tagihin/tagihin/internal/cache"
	"github.com/tagihin/tagihin/internal/config"
	"github.com/tagihin/tagihin/internal/domain/auditlog"
	"github.com/tagihin/tagihin/internal/domain/bankaccount"
	"github.com/tagihin/tagihin/internal/domain/billing"
	"github.com/tagihin/tagihin/internal/domain/client"
	"github.com/tagihin/tagihin/internal/domain/invoice"
	"github.com/tagihin/tagihin/internal/domain/product"
	"github.com/tagihin/tagihin/internal/domain/quotation"
	"github.com/tagihin/tagihin/internal/domain/sequence"
	"github.com/tagihin/tagihin/internal/domain/settings"
	"github.com/tagihin/tagihin/internal/domain/taxrate"
	"github.com/tagihin/tagihin/internal/domain/user"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/midtrans"
	"github.com/tagihin/tagihin/internal/pdf"
	"github.com/tagihin/tagihin/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	DB           postgres.IClient
	Cache        cache.Cache
	Midtrans     midtrans.Client
	PDFGenerator pdf.Generator

	// Repositories
	UserRepo                user.Repository
	ClientRepo              client.Repository
	ProductRepo             product.Repository
	TaxRateRepo             taxrate.Repository
	BankAccountRepo         bankaccount.Repository
	SettingsRepo            settings.Repository
	InvoiceRepo             invoice.Repository
	QuotationRepo           quotation.Repository
	SubscriptionInvoiceRepo billing.Repository
	AuditLogRepo            auditlog.Repository
	SequenceRepo            sequence.Repository
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	midtransClient midtrans.Client,
	pdfGenerator pdf.Generator,
	userRepo user.Repository,
	clientRepo client.Repository,
	productRepo product.Repository,
	taxRateRepo taxrate.Repository,
	bankAccountRepo bankaccount.Repository,
	settingsRepo settings.Repository,
	invoiceRepo invoice.Repository,
	quotationRepo quotation.Repository,
	subscriptionInvoiceRepo billing.Repository,
	auditLogRepo auditlog.Repository,
	sequenceRepo sequence.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:                  logger,
		Config:                  config,
		DB:                      db,
		Cache:                   cache,
		Midtrans:                midtransClient,
		PDFGenerator:            pdfGenerator,
		UserRepo:                userRepo,
		ClientRepo:              clientRepo,
		ProductRepo:             productRepo,
		TaxRateRepo:             taxRateRepo,
		BankAccountRepo:         bankAccountRepo,
		SettingsRepo:            settingsRepo,
		InvoiceRepo:             invoiceRepo,
		QuotationRepo:           quotationRepo,
		SubscriptionInvoiceRepo: subscriptionInvoiceRepo,
		AuditLogRepo:            auditLogRepo,
		SequenceRepo:            sequenceRepo,
	}
}
