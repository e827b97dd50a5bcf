package testutil

import (
	"context"

	"github.com/tagihin/tagihin/internal/types"
)

// SetupContext returns a context carrying the default company and user ids
// used across service tests.
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxCompanyID, types.DefaultCompanyID)
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
