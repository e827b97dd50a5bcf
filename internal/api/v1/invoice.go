package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tagihin/tagihin/internal/api/dto"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/service"
	"github.com/tagihin/tagihin/internal/types"
)

type InvoiceHandler struct {
	service service.InvoiceService
	log     *logger.Logger
}

func NewInvoiceHandler(service service.InvoiceService, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, log: log}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind json", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Create(ctx, &req)
	if err != nil {
		h.log.Errorw("failed to create invoice", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		h.log.Errorw("failed to get invoice", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	ctx := c.Request.Context()
	var filter types.InvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.log.Errorw("failed to bind query", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.List(ctx, &filter)
	if err != nil {
		h.log.Errorw("failed to list invoices", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) MarkInvoicePaid(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.MarkInvoicePaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.log.Errorw("failed to bind json", "error", err)
			c.Error(ierr.WithError(err).
				WithHint("Invalid request format").
				Mark(ierr.ErrValidation))
			return
		}
	}

	resp, err := h.service.MarkPaid(ctx, c.Param("id"), &req)
	if err != nil {
		h.log.Errorw("failed to mark invoice paid", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
