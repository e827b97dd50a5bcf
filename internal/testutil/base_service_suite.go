package testutil

import (
	"context"
	"time"

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
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
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

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	stores       Stores
	db           postgres.IClient
	logger       *logger.Logger
	config       *config.Configuration
	cache        cache.Cache
	httpClient   *MockHTTPClient
	midtrans     midtrans.Client
	pdfGenerator *MockPDFGenerator
	now          time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	cfg := config.GetDefaultConfig()
	cfg.Midtrans.ServerKey = "SB-Mid-server-testkey"
	cfg.Midtrans.CallbackBaseURL = "https://app.example.test"
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.ClearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		UserRepo:                NewInMemoryUserStore(),
		ClientRepo:              NewInMemoryClientStore(),
		ProductRepo:             NewInMemoryProductStore(),
		TaxRateRepo:             NewInMemoryTaxRateStore(),
		BankAccountRepo:         NewInMemoryBankAccountStore(),
		SettingsRepo:            NewInMemorySettingsStore(),
		InvoiceRepo:             NewInMemoryInvoiceStore(),
		QuotationRepo:           NewInMemoryQuotationStore(),
		SubscriptionInvoiceRepo: NewInMemorySubscriptionInvoiceStore(),
		AuditLogRepo:            NewInMemoryAuditLogStore(),
		SequenceRepo:            NewInMemorySequenceStore(),
	}

	s.db = NewMockPostgresClient(s.logger)
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.httpClient = NewMockHTTPClient()
	s.midtrans = midtrans.NewClientWithHTTP(s.config, s.httpClient, s.logger)
	s.pdfGenerator = NewMockPDFGenerator(s.logger)
}

// ClearStores wipes all in-memory state between tests
func (s *BaseServiceTestSuite) ClearStores() {
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.ClientRepo.(*InMemoryClientStore).Clear()
	s.stores.ProductRepo.(*InMemoryProductStore).Clear()
	s.stores.TaxRateRepo.(*InMemoryTaxRateStore).Clear()
	s.stores.BankAccountRepo.(*InMemoryBankAccountStore).Clear()
	s.stores.SettingsRepo.(*InMemorySettingsStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.QuotationRepo.(*InMemoryQuotationStore).Clear()
	s.stores.SubscriptionInvoiceRepo.(*InMemorySubscriptionInvoiceStore).Clear()
	s.stores.AuditLogRepo.(*InMemoryAuditLogStore).Clear()
	s.stores.SequenceRepo.(*InMemorySequenceStore).Clear()
	s.httpClient.Clear()
	s.cache.Flush(s.ctx)
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// SetContext overrides the test context
func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the mock database client
func (s *BaseServiceTestSuite) GetDB() postgres.IClient {
	return s.db
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetHTTPClient returns the mock HTTP client backing the Midtrans client
func (s *BaseServiceTestSuite) GetHTTPClient() *MockHTTPClient {
	return s.httpClient
}

// GetMidtrans returns the Midtrans client wired to the mock HTTP client
func (s *BaseServiceTestSuite) GetMidtrans() midtrans.Client {
	return s.midtrans
}

// GetPDFGenerator returns the mock PDF generator
func (s *BaseServiceTestSuite) GetPDFGenerator() *MockPDFGenerator {
	return s.pdfGenerator
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// GetUUID returns a fresh id for fixtures
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
