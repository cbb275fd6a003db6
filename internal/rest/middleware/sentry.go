package middleware

import (
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/opsdesk/portal/internal/config"
	"github.com/opsdesk/portal/internal/types"
)

// SentryMiddleware attaches a sentry hub to each request when reporting is enabled
func SentryMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Sentry.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// SentryScopeMiddleware tags the request hub with the request and acting user.
// It is a no-op when no hub was attached.
func SentryScopeMiddleware(c *gin.Context) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		ctx := c.Request.Context()
		hub.Scope().SetTag("request_id", types.GetRequestID(ctx))
		hub.Scope().SetTag("user_id", types.GetUserID(ctx))
	}
	c.Next()
}
