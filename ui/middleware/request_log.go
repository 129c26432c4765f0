package middleware

import (
	"time"

	"leanfunnel/internal"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through the application logger
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := "%s %s -> %d (%s)"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Microsecond)}
		switch {
		case status >= 500:
			logger.Error(line, args...)
		case status >= 400:
			logger.Warn(line, args...)
		default:
			logger.Debug(line, args...)
		}
	}
}
