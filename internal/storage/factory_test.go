package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompress/internal/config"
	"pdfcompress/internal/storage"
)

func TestNew_NotConfigured(t *testing.T) {
	st, err := storage.New(context.Background(), &config.StorageConfig{})
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestNew_DevelopmentStorage(t *testing.T) {
	st, err := storage.New(context.Background(), &config.StorageConfig{
		ConnectionString: config.DevelopmentStorageSentinel,
	})
	require.NoError(t, err)
	assert.NotNil(t, st)
}

func TestNew_S3(t *testing.T) {
	st, err := storage.New(context.Background(), &config.StorageConfig{
		ConnectionString: "Provider=s3;Region=us-east-1;AccessKey=a;SecretKey=b",
	})
	require.NoError(t, err)
	assert.NotNil(t, st)
}

func TestNew_InvalidConnectionString(t *testing.T) {
	_, err := storage.New(context.Background(), &config.StorageConfig{ConnectionString: "Provider=ftp"})
	assert.Error(t, err)
}
