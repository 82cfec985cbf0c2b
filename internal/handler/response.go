package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"pdfcompress/internal/domain"
	"pdfcompress/internal/middleware"
)

// maxCauseLength bounds the error detail echoed back to clients.
const maxCauseLength = 200

// APIResponse is the envelope for JSON error responses.
type APIResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, "MISSING_FILE", "file field is required"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, "FILE_TOO_LARGE", err.Error()
	case errors.Is(err, domain.ErrInvalidPageSelector):
		return http.StatusBadRequest, "INVALID_PAGE_SELECTOR", err.Error()
	case errors.Is(err, domain.ErrStorageNotConfigured):
		return http.StatusInternalServerError, "STORAGE_NOT_CONFIGURED", "storage connection string is not configured"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", processingMessage(err)
	default:
		return http.StatusInternalServerError, "PROCESSING_FAILED", processingMessage(err)
	}
}

func processingMessage(err error) string {
	return "failed to process PDF: " + truncate(err.Error(), maxCauseLength)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, logger log.Logger, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		level.Error(middleware.GetLogger(c, logger)).Log("msg", "request failed", "code", code, "err", err)
	}
	RespondError(c, status, code, msg)
}
