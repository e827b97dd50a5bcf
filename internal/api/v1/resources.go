package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tagihin/tagihin/internal/domain/bankaccount"
	"github.com/tagihin/tagihin/internal/domain/client"
	"github.com/tagihin/tagihin/internal/domain/product"
	"github.com/tagihin/tagihin/internal/domain/taxrate"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/types"
)

// ResourceHandler exposes read-only listings of the supporting resources
// that invoices and quotations reference.
type ResourceHandler struct {
	clients      client.Repository
	products     product.Repository
	taxRates     taxrate.Repository
	bankAccounts bankaccount.Repository
	log          *logger.Logger
}

func NewResourceHandler(
	clients client.Repository,
	products product.Repository,
	taxRates taxrate.Repository,
	bankAccounts bankaccount.Repository,
	log *logger.Logger,
) *ResourceHandler {
	return &ResourceHandler{
		clients:      clients,
		products:     products,
		taxRates:     taxRates,
		bankAccounts: bankAccounts,
		log:          log,
	}
}

func (h *ResourceHandler) bindFilter(c *gin.Context) (*types.Filter, bool) {
	var filter types.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.log.Errorw("failed to bind query", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return nil, false
	}
	return &filter, true
}

func (h *ResourceHandler) ListClients(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	items, err := h.clients.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ResourceHandler) ListProducts(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	items, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ResourceHandler) ListTaxRates(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	items, err := h.taxRates.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ResourceHandler) ListBankAccounts(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	items, err := h.bankAccounts.List(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
