package middleware

import (
	"github.com/gin-gonic/gin"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/logger"
)

// ErrorHandler renders the last error a handler attached to the context
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := ierr.HTTPStatusFromErr(err)
		if status >= 500 {
			logger.L.WithContext(c.Request.Context()).Errorw("request failed",
				"path", c.FullPath(),
				"code", ierr.CodeFromErr(err),
				"error", err,
			)
		}
		c.JSON(status, ierr.NewErrorResponse(err))
	}
}
