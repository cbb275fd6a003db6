package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opsdesk/portal/internal/types"
)

func RequestIDMiddleware(c *gin.Context) {
	// Create a new context from the request context
	ctx := c.Request.Context()

	// Add request ID
	requestID := c.GetHeader(types.HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	// Replace request context
	c.Request = c.Request.WithContext(ctx)

	// Add headers for response
	c.Header(types.HeaderRequestID, requestID)

	c.Next()
}

// UserContextMiddleware records the acting user for audit columns.
// Authentication happens in front of the portal; the gateway forwards the
// user in X-User-ID and requests without it act as the default user.
func UserContextMiddleware(c *gin.Context) {
	userID := c.GetHeader(types.HeaderUserID)
	if userID == "" {
		userID = types.DefaultUserID
	}
	c.Request = c.Request.WithContext(types.SetUserID(c.Request.Context(), userID))
	c.Next()
}
