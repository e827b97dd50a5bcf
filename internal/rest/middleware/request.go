package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tagihin/tagihin/internal/types"
)

// RequestIDMiddleware tags every request with an id and records the caller's
// address for audit logging.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	ctx = context.WithValue(ctx, types.CtxClientIP, c.ClientIP())
	ctx = context.WithValue(ctx, types.CtxUserAgent, c.Request.UserAgent())

	c.Request = c.Request.WithContext(ctx)
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}
