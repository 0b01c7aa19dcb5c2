package testutil

import (
	"context"

	"github.com/flexprice/invoicing/internal/types"
)

// SetupContext returns a request context for the default tenant and user
func SetupContext() context.Context {
	return SetupTenantContext(types.DefaultTenantID)
}

// SetupTenantContext returns a request context scoped to tenantID
func SetupTenantContext(tenantID string) context.Context {
	ctx := types.SetTenantID(context.Background(), tenantID)
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	return types.SetRequestID(ctx, types.GenerateUUID())
}
