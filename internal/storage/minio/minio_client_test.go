package minio_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompress/internal/config"
	"pdfcompress/internal/storage/minio"
)

func TestMinIOClient_GetPresignedURL_DevelopmentStorage(t *testing.T) {
	conn, err := config.ParseStorageConnectionString(config.DevelopmentStorageSentinel)
	require.NoError(t, err)

	storage, err := minio.NewMinIOClient(conn)
	require.NoError(t, err)

	raw, err := storage.GetPresignedURL(context.Background(), "compressed-pdfs", "id_compressed_a.pdf", 3600)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/compressed-pdfs/id_compressed_a.pdf", u.Path)
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
}

func TestNewMinIOClient_InvalidEndpoint(t *testing.T) {
	_, err := minio.NewMinIOClient(&config.StorageConnection{
		Provider: config.StorageProviderMinIO,
		Endpoint: "http://has-a-scheme:9000",
	})
	assert.Error(t, err)
}
