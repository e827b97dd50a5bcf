package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tagihin/tagihin/internal/auth"
	"github.com/tagihin/tagihin/internal/config"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/types"
)

// GuestAuthenticateMiddleware allows requests without authentication by
// setting default company and user ids. Used in local mode only.
func GuestAuthenticateMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	ctx = context.WithValue(ctx, types.CtxCompanyID, types.DefaultCompanyID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// AuthenticateMiddleware authenticates requests with a JWT bearer token and
// sets the user and company ids in the request context for downstream
// handlers.
func AuthenticateMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	provider := auth.NewProvider(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := provider.ValidateToken(tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if claims.UserID == "" || claims.CompanyID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, types.CtxCompanyID, claims.CompanyID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
