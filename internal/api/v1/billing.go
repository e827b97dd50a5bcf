package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tagihin/tagihin/internal/api/dto"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/service"
	"github.com/tagihin/tagihin/internal/types"
)

type BillingHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewBillingHandler(service service.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{service: service, log: log}
}

func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind json", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCheckout(ctx, &req)
	if err != nil {
		h.log.Errorw("failed to create checkout", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BillingHandler) ConfirmPayment(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind json", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ConfirmPayment(ctx, &req)
	if err != nil {
		h.log.Errorw("failed to confirm payment", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) ListMyInvoices(c *gin.Context) {
	ctx := c.Request.Context()
	var filter types.SubscriptionInvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.log.Errorw("failed to bind query", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListMyInvoices(ctx, &filter)
	if err != nil {
		h.log.Errorw("failed to list subscription invoices", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) DownloadReceipt(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	pdfBytes, err := h.service.DownloadReceipt(ctx, id)
	if err != nil {
		h.log.Errorw("failed to render receipt", "error", err, "subscription_invoice_id", id)
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
