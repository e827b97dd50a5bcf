package types

import (
	"context"
	"fmt"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxCompanyID ContextKey = "ctx_company_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxClientIP  ContextKey = "ctx_client_ip"
	CtxUserAgent ContextKey = "ctx_user_agent"

	// Default values used by tests and scripts
	DefaultCompanyID = "00000000-0000-0000-0000-000000000000"
	DefaultUserID    = "00000000-0000-0000-0000-000000000000"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

// GetCompanyID returns the acting user's company (tenant) id from the context.
// Every tenant-scoped repository query filters on this value.
func GetCompanyID(ctx context.Context) string {
	if companyID, ok := ctx.Value(CtxCompanyID).(string); ok {
		return companyID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(CtxClientIP).(string); ok {
		return ip
	}
	return ""
}

func GetUserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(CtxUserAgent).(string); ok {
		return ua
	}
	return ""
}

// SetCompanyID sets the company ID in the context
func SetCompanyID(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, CtxCompanyID, companyID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// ValidateTenantContext validates that the required tenant context fields are present
func ValidateTenantContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}

	if GetCompanyID(ctx) == "" {
		return fmt.Errorf("no company context found in context")
	}

	return nil
}
