package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// FunctionKeyHeader carries the function key on API requests.
	FunctionKeyHeader = "x-functions-key"
	// FunctionKeyQuery is the query parameter alternative to FunctionKeyHeader.
	FunctionKeyQuery = "code"
)

// FunctionKey returns middleware that requires the configured key in the
// x-functions-key header or the code query parameter. An empty key lets
// every request through.
func FunctionKey(key string) gin.HandlerFunc {
	expected := []byte(key)
	return func(c *gin.Context) {
		if len(expected) == 0 {
			c.Next()
			return
		}

		provided := c.GetHeader(FunctionKeyHeader)
		if provided == "" {
			provided = c.Query(FunctionKeyQuery)
		}
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid function key"},
			})
			return
		}
		c.Next()
	}
}
