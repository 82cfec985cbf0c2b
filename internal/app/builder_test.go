package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompress/internal/app"
	"pdfcompress/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            "127.0.0.1:0",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
			Environment:     "development",
		},
		Compress: config.CompressConfig{MaxUploadBytes: config.DefaultMaxUploadBytes, Delivery: "inline"},
		Storage:  config.StorageConfig{Bucket: "compressed-pdfs", PresignExpiry: 3600},
	}
}

func TestBuild_WithoutStorage(t *testing.T) {
	a, err := app.Build(context.Background(), testConfig(), log.NewNopLogger())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "disabled")
}

func TestBuild_DevelopmentStorage(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.ConnectionString = config.DevelopmentStorageSentinel

	a, err := app.Build(context.Background(), cfg, log.NewNopLogger())
	require.NoError(t, err)
	assert.NotNil(t, a.Engine())
}

func TestBuild_InvalidStorage(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.ConnectionString = "Provider=minio"

	_, err := app.Build(context.Background(), cfg, log.NewNopLogger())
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	a, err := app.Build(context.Background(), testConfig(), log.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
