package middleware

import (
	"time"

	"github.com/gdugdh24/matrimony-backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-ID"

	RequestIDKey = "request_id"
	LoggerKey    = "logger"
)

// LoggerFrom returns the request-scoped logger, or a no-op logger when the
// logging middleware did not run.
func LoggerFrom(c *gin.Context) *zap.Logger {
	if value, ok := c.Get(LoggerKey); ok {
		if log, ok := value.(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}

// LoggingMiddleware tags every request with an id and logs its outcome.
func LoggingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		requestLogger := logger.WithRequestID(log, requestID)
		c.Set(LoggerKey, requestLogger)

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.Int("size", c.Writer.Size()),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			requestLogger.Error("request completed", fields...)
		case status >= 400:
			requestLogger.Warn("request completed", fields...)
		default:
			requestLogger.Info("request completed", fields...)
		}
	}
}
