// Package middleware provides the HTTP request logging middleware.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Nofexxx/pet-f/internal/logger"
)

// LoggerMiddleware logs every handled request.
type LoggerMiddleware struct {
	logger *logrus.Logger
}

// NewLoggerMiddleware creates a logger middleware backed by the application
// logger.
func NewLoggerMiddleware() *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger.GetLogger(),
	}
}

// RequestLogger records method, path, status and latency of each request.
func (m *LoggerMiddleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		errorMessage := c.Errors.String()

		m.logger.WithFields(logrus.Fields{
			"status":        status,
			"latency":       latency,
			"client_ip":     c.ClientIP(),
			"method":        c.Request.Method,
			"path":          path,
			"raw_query":     raw,
			"error_message": errorMessage,
		}).Info("HTTP request")
	}
}
