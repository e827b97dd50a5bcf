package cron

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/service"
)

// BillingCronHandler exposes billing jobs over HTTP so they can be triggered
// by an external scheduler in addition to the built-in one.
type BillingCronHandler struct {
	billingService service.BillingService
	log            *logger.Logger
}

func NewBillingCronHandler(billingService service.BillingService, log *logger.Logger) *BillingCronHandler {
	return &BillingCronHandler{
		billingService: billingService,
		log:            log,
	}
}

// ProcessAutoBilling creates renewal invoices for upcoming plan renewals.
func (h *BillingCronHandler) ProcessAutoBilling(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.billingService.ProcessAutoBilling(ctx, time.Now().UTC())
	if err != nil {
		h.log.Errorw("auto-billing run failed", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}
