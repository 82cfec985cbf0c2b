package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompress/internal/domain"
	"pdfcompress/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing file", domain.ErrMissingFile, http.StatusBadRequest, "MISSING_FILE"},
		{"too large", fmt.Errorf("%w: 101 MiB", domain.ErrFileTooLarge), http.StatusBadRequest, "FILE_TOO_LARGE"},
		{"page selector", fmt.Errorf("%w: bad", domain.ErrInvalidPageSelector), http.StatusBadRequest, "INVALID_PAGE_SELECTOR"},
		{"storage not configured", domain.ErrStorageNotConfigured, http.StatusInternalServerError, "STORAGE_NOT_CONFIGURED"},
		{"upload failed", fmt.Errorf("%w: denied", domain.ErrUploadFailed), http.StatusInternalServerError, "UPLOAD_FAILED"},
		{"invalid pdf", fmt.Errorf("%w: eof", domain.ErrInvalidPDF), http.StatusInternalServerError, "PROCESSING_FAILED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "PROCESSING_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_ProcessingMessage(t *testing.T) {
	_, _, msg := handler.MapDomainError(errors.New("xref section not found"))
	assert.Equal(t, "failed to process PDF: xref section not found", msg)

	_, _, msg = handler.MapDomainError(errors.New(strings.Repeat("é", 250)))
	assert.Equal(t, "failed to process PDF: "+strings.Repeat("é", 200), msg)
}

func TestRespondError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handler.RespondError(c, http.StatusBadRequest, "MISSING_FILE", "no file")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 2)
	assert.JSONEq(t, `false`, string(body["success"]))
	assert.JSONEq(t, `{"code":"MISSING_FILE","message":"no file"}`, string(body["error"]))
}
