package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/midtrans"
	"github.com/tagihin/tagihin/internal/service"
)

type WebhookHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewWebhookHandler(service service.BillingService, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, log: log}
}

// HandleMidtransNotification processes Midtrans payment notifications. The
// response contract is what Midtrans expects: 403 on a bad signature, 200
// with a message for unknown orders (so the gateway stops retrying), 200 OK
// otherwise.
func (h *WebhookHandler) HandleMidtransNotification(c *gin.Context) {
	ctx := c.Request.Context()

	var notification midtrans.TransactionStatus
	if err := c.ShouldBindJSON(&notification); err != nil {
		h.log.Errorw("failed to bind webhook payload", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload."})
		return
	}

	err := h.service.HandleNotification(ctx, &notification)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "OK"})
	case ierr.IsSignatureInvalid(err):
		h.log.Warnw("webhook signature verification failed",
			"order_id", notification.OrderID,
		)
		c.JSON(http.StatusForbidden, gin.H{"message": "Invalid signature."})
	case ierr.IsNotFound(err):
		// 200 so the gateway does not keep retrying an order we will
		// never know about.
		h.log.Warnw("webhook for unknown order",
			"order_id", notification.OrderID,
		)
		c.JSON(http.StatusOK, gin.H{"message": "Order not found."})
	default:
		h.log.Errorw("failed to process webhook", "error", err,
			"order_id", notification.OrderID,
		)
		c.Error(err)
	}
}
