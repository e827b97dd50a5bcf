package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/tagihin/tagihin/internal/api"
	"github.com/tagihin/tagihin/internal/api/cron"
	v1 "github.com/tagihin/tagihin/internal/api/v1"
	"github.com/tagihin/tagihin/internal/cache"
	"github.com/tagihin/tagihin/internal/config"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/midtrans"
	"github.com/tagihin/tagihin/internal/pdf"
	"github.com/tagihin/tagihin/internal/postgres"
	"github.com/tagihin/tagihin/internal/repository"
	"github.com/tagihin/tagihin/internal/scheduler"
	"github.com/tagihin/tagihin/internal/service"
	"github.com/tagihin/tagihin/internal/types"
	"github.com/tagihin/tagihin/internal/typst"
	"github.com/tagihin/tagihin/internal/validator"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,
			postgres.NewClient,

			// Payment gateway
			midtrans.NewClient,

			// PDF rendering
			provideTypstCompiler,
			pdf.NewGenerator,

			// Repositories
			repository.NewUserRepository,
			repository.NewClientRepository,
			repository.NewProductRepository,
			repository.NewTaxRateRepository,
			repository.NewBankAccountRepository,
			repository.NewSettingsRepository,
			repository.NewInvoiceRepository,
			repository.NewQuotationRepository,
			repository.NewSubscriptionInvoiceRepository,
			repository.NewAuditLogRepository,
			repository.NewSequenceRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewInvoiceService,
			service.NewQuotationService,
			service.NewSettingsService,
			service.NewBillingService,
		),
	)

	// API and scheduler
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
			provideScheduler,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	invoiceService service.InvoiceService,
	quotationService service.QuotationService,
	settingsService service.SettingsService,
	billingService service.BillingService,
	params service.ServiceParams,
) api.Handlers {
	return api.Handlers{
		Health:    v1.NewHealthHandler(),
		Invoice:   v1.NewInvoiceHandler(invoiceService, logger),
		Quotation: v1.NewQuotationHandler(quotationService, logger),
		Settings:  v1.NewSettingsHandler(settingsService, logger),
		Billing:   v1.NewBillingHandler(billingService, logger),
		Webhook:   v1.NewWebhookHandler(billingService, logger),
		Resources: v1.NewResourceHandler(
			params.ClientRepo,
			params.ProductRepo,
			params.TaxRateRepo,
			params.BankAccountRepo,
			logger,
		),
		BillingCron: cron.NewBillingCronHandler(billingService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func provideTypstCompiler(logger *logger.Logger) typst.Compiler {
	return typst.DefaultCompiler(logger)
}

func provideScheduler(
	cfg *config.Configuration,
	billingService service.BillingService,
	logger *logger.Logger,
) *scheduler.Scheduler {
	return scheduler.New(cfg, billingService, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	sched *scheduler.Scheduler,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		startAPIServer(lc, r, cfg, log)
		startScheduler(lc, sched, log)
	case types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeCron:
		startScheduler(lc, sched, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startScheduler(lc fx.Lifecycle, sched *scheduler.Scheduler, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sched.Start()
		},
		OnStop: func(ctx context.Context) error {
			sched.Stop()
			return nil
		},
	})
}
