package repository

import (
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
	"github.com/tagihin/tagihin/internal/postgres"
	postgresRepo "github.com/tagihin/tagihin/internal/repository/postgres"
)

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return postgresRepo.NewClientRepository(db, logger)
}

func NewProductRepository(db *postgres.DB, logger *logger.Logger) product.Repository {
	return postgresRepo.NewProductRepository(db, logger)
}

func NewTaxRateRepository(db *postgres.DB, logger *logger.Logger) taxrate.Repository {
	return postgresRepo.NewTaxRateRepository(db, logger)
}

func NewBankAccountRepository(db *postgres.DB, logger *logger.Logger) bankaccount.Repository {
	return postgresRepo.NewBankAccountRepository(db, logger)
}

func NewSettingsRepository(db *postgres.DB, logger *logger.Logger) settings.Repository {
	return postgresRepo.NewSettingsRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewQuotationRepository(db *postgres.DB, logger *logger.Logger) quotation.Repository {
	return postgresRepo.NewQuotationRepository(db, logger)
}

func NewSubscriptionInvoiceRepository(db *postgres.DB, logger *logger.Logger) billing.Repository {
	return postgresRepo.NewSubscriptionInvoiceRepository(db, logger)
}

func NewAuditLogRepository(db *postgres.DB, logger *logger.Logger) auditlog.Repository {
	return postgresRepo.NewAuditLogRepository(db, logger)
}

func NewSequenceRepository(db *postgres.DB, logger *logger.Logger) sequence.Repository {
	return postgresRepo.NewSequenceRepository(db, logger)
}
