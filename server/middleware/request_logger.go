package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderRequestID is echoed back to clients for correlation.
	HeaderRequestID = "X-Request-Id"

	logFieldRequestID = "request_id"
	logFieldMethod    = "method"
	logFieldPath      = "path"
	logFieldStatus    = "status"
	logFieldDuration  = "duration_ms"
)

// RequestLoggerMiddleware assigns each request an ID and logs one
// structured line per request.
func RequestLoggerMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Response().Header().Set(HeaderRequestID, requestID)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("request",
				slog.String(logFieldRequestID, requestID),
				slog.String(logFieldMethod, c.Request().Method),
				slog.String(logFieldPath, c.Request().URL.Path),
				slog.Int(logFieldStatus, c.Response().Status),
				slog.Int64(logFieldDuration, time.Since(start).Milliseconds()),
			)
			return err
		}
	}
}
