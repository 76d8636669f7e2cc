package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger emits one summary line per request. Money-movement responses carry
// the idempotency headers, which are picked up here so that a replayed
// outcome can be traced to the request that first produced it. The header
// names are read from the response because the engine may have generated the
// key itself.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if correlationID := GetCorrelationID(c); correlationID != "" {
			fields = append(fields, "correlation_id", correlationID)
		}
		if key := c.Writer.Header().Get("Idempotency-Key"); key != "" {
			fields = append(fields, "idempotency_key", key)
		}
		if replayStatus := c.Writer.Header().Get("Idempotency-Status"); replayStatus != "" {
			fields = append(fields, "idempotency_status", replayStatus)
		}

		logger.Info("HTTP request", fields...)
	}
}
