package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pdfcompress/internal/middleware"
)

func functionKeyRouter(key string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.FunctionKey(key))
	r.POST("/api/compress_pdf", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestFunctionKey(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		header string
		query  string
		want   int
	}{
		{"disabled", "", "", "", http.StatusOK},
		{"header match", "s3cret", "s3cret", "", http.StatusOK},
		{"query match", "s3cret", "", "s3cret", http.StatusOK},
		{"missing", "s3cret", "", "", http.StatusUnauthorized},
		{"wrong header", "s3cret", "nope", "", http.StatusUnauthorized},
		{"wrong header ignores query", "s3cret", "nope", "s3cret", http.StatusUnauthorized},
		{"prefix only", "s3cret", "s3c", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/compress_pdf"
			if tt.query != "" {
				target += "?code=" + tt.query
			}
			req := httptest.NewRequest(http.MethodPost, target, http.NoBody)
			if tt.header != "" {
				req.Header.Set("x-functions-key", tt.header)
			}
			w := httptest.NewRecorder()
			functionKeyRouter(tt.key).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
			}
		})
	}
}
