package api

import (
	"github.com/gin-gonic/gin"
	"github.com/tagihin/tagihin/internal/api/cron"
	v1 "github.com/tagihin/tagihin/internal/api/v1"
	"github.com/tagihin/tagihin/internal/config"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/rest/middleware"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Invoice     *v1.InvoiceHandler
	Quotation   *v1.QuotationHandler
	Settings    *v1.SettingsHandler
	Billing     *v1.BillingHandler
	Webhook     *v1.WebhookHandler
	Resources   *v1.ResourceHandler
	BillingCron *cron.BillingCronHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// Webhooks authenticate by signature, not by bearer token.
	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/midtrans", handlers.Webhook.HandleMidtransNotification)
	}

	// Cron endpoints are meant for internal schedulers only and must not
	// carry tenant auth.
	cronGroup := router.Group("/cron")
	{
		cronGroup.POST("/billing/auto-bill", handlers.BillingCron.ProcessAutoBilling)
	}

	v1Group := router.Group("/v1")
	v1Group.Use(middleware.AuthenticateMiddleware(cfg, log))
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.POST("/:id/pay", handlers.Invoice.MarkInvoicePaid)
	}

	quotations := router.Group("/quotations")
	{
		quotations.POST("", handlers.Quotation.CreateQuotation)
		quotations.GET("", handlers.Quotation.ListQuotations)
		quotations.GET("/:id", handlers.Quotation.GetQuotation)
		quotations.POST("/:id/status", handlers.Quotation.UpdateQuotationStatus)
		quotations.POST("/:id/convert", handlers.Quotation.ConvertQuotation)
	}

	settings := router.Group("/settings")
	{
		settings.GET("", handlers.Settings.GetSettings)
		settings.PUT("", handlers.Settings.UpdateSettings)
	}

	billing := router.Group("/billing")
	{
		billing.POST("/checkout", handlers.Billing.CreateCheckout)
		billing.POST("/confirm", handlers.Billing.ConfirmPayment)
		billing.GET("/invoices", handlers.Billing.ListMyInvoices)
		billing.GET("/receipts/:id/download", handlers.Billing.DownloadReceipt)
	}

	// Read-only reference data for document forms
	router.GET("/clients", handlers.Resources.ListClients)
	router.GET("/products", handlers.Resources.ListProducts)
	router.GET("/tax-rates", handlers.Resources.ListTaxRates)
	router.GET("/bank-accounts", handlers.Resources.ListBankAccounts)
}
