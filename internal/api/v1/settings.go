package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tagihin/tagihin/internal/api/dto"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/service"
)

type SettingsHandler struct {
	service service.SettingsService
	log     *logger.Logger
}

func NewSettingsHandler(service service.SettingsService, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, log: log}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.GetAll(ctx)
	if err != nil {
		h.log.Errorw("failed to get settings", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("failed to bind json", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Update(ctx, &req)
	if err != nil {
		h.log.Errorw("failed to update settings", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
