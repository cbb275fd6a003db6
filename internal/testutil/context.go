package testutil

import (
	"context"

	"github.com/opsdesk/portal/internal/types"
)

// SetupContext returns a request scoped context acting as the default user
func SetupContext() context.Context {
	return ContextAs(types.DefaultUserID)
}

// ContextAs returns a request scoped context acting as userID
func ContextAs(userID string) context.Context {
	ctx := types.SetUserID(context.Background(), userID)
	return types.SetRequestID(ctx, types.GenerateUUID())
}
