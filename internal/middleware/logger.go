package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

const (
	ContextKeyRequestID = "request_id"
	ContextKeyLogger    = "logger"
)

// RequestID injects an X-Request-ID header into the request and response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger stores a request-scoped logger in the context and logs each HTTP
// request with method, path, status, and latency once it completes.
func Logger(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLogger := log.With(logger, "request_id", c.GetString(ContextKeyRequestID))
		c.Set(ContextKeyLogger, reqLogger)

		c.Next()

		status := c.Writer.Status()
		lvl := level.Info
		if status >= http.StatusInternalServerError {
			lvl = level.Error
		}
		lvl(reqLogger).Log(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"bytes", c.Writer.Size(),
		)
	}
}

// GetLogger returns the request-scoped logger, or fallback when Logger did
// not run for this request.
func GetLogger(c *gin.Context, fallback log.Logger) log.Logger {
	if v, ok := c.Get(ContextKeyLogger); ok {
		if l, ok := v.(log.Logger); ok {
			return l
		}
	}
	return fallback
}

// Recovery recovers from panics, logs them and returns a 500 error.
func Recovery(logger log.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		level.Error(GetLogger(c, logger)).Log("msg", "panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL_ERROR", "message": "an internal error occurred"},
		})
	})
}
