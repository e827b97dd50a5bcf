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

type QuotationHandler struct {
	service service.QuotationService
	log     *logger.Logger
}

func NewQuotationHandler(service service.QuotationService, log *logger.Logger) *QuotationHandler {
	return &QuotationHandler{service: service, log: log}
}

func (h *QuotationHandler) CreateQuotation(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind json", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Create(ctx, &req)
	if err != nil {
		h.log.Errorw("failed to create quotation", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *QuotationHandler) GetQuotation(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.Get(ctx, c.Param("id"))
	if err != nil {
		h.log.Errorw("failed to get quotation", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuotationHandler) ListQuotations(c *gin.Context) {
	ctx := c.Request.Context()
	var filter types.QuotationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.log.Errorw("failed to bind query", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.List(ctx, &filter)
	if err != nil {
		h.log.Errorw("failed to list quotations", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuotationHandler) UpdateQuotationStatus(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.UpdateQuotationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind json", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateStatus(ctx, c.Param("id"), &req)
	if err != nil {
		h.log.Errorw("failed to update quotation status", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuotationHandler) ConvertQuotation(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.ConvertToInvoice(ctx, c.Param("id"))
	if err != nil {
		h.log.Errorw("failed to convert quotation", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
