package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfcompress/internal/config"
)

func TestParseStorageConnectionString_DevelopmentSentinel(t *testing.T) {
	for _, s := range []string{"UseDevelopmentStorage=true", "usedevelopmentstorage=TRUE;", "  UseDevelopmentStorage=true  "} {
		conn, err := config.ParseStorageConnectionString(s)
		require.NoError(t, err, s)
		assert.Equal(t, config.StorageProviderMinIO, conn.Provider)
		assert.Equal(t, "127.0.0.1:9000", conn.Endpoint)
		assert.Equal(t, "minioadmin", conn.AccessKey)
		assert.False(t, conn.UseSSL)
		assert.True(t, conn.PathStyle)
	}
}

func TestParseStorageConnectionString_S3(t *testing.T) {
	conn, err := config.ParseStorageConnectionString(
		"Provider=S3;Region=eu-west-1;AccessKey=AKIA;SecretKey=shh;Endpoint=https://s3.example.com;PathStyle=true")
	require.NoError(t, err)

	assert.Equal(t, config.StorageProviderS3, conn.Provider)
	assert.Equal(t, "eu-west-1", conn.Region)
	assert.Equal(t, "AKIA", conn.AccessKey)
	assert.Equal(t, "shh", conn.SecretKey)
	assert.Equal(t, "https://s3.example.com", conn.Endpoint)
	assert.True(t, conn.PathStyle)
	assert.True(t, conn.UseSSL)
}

func TestParseStorageConnectionString_DefaultsToS3(t *testing.T) {
	conn, err := config.ParseStorageConnectionString("Region=ap-south-1")
	require.NoError(t, err)
	assert.Equal(t, config.StorageProviderS3, conn.Provider)
	assert.Equal(t, "ap-south-1", conn.Region)
}

func TestParseStorageConnectionString_MinIO(t *testing.T) {
	conn, err := config.ParseStorageConnectionString("Provider=minio;Endpoint=minio:9000;AccessKey=a;SecretKey=b;UseSSL=false")
	require.NoError(t, err)
	assert.Equal(t, config.StorageProviderMinIO, conn.Provider)
	assert.Equal(t, "minio:9000", conn.Endpoint)
	assert.False(t, conn.UseSSL)
}

func TestParseStorageConnectionString_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no equals", "Provider"},
		{"unknown key", "Bucket=x"},
		{"unknown provider", "Provider=gcs"},
		{"minio without endpoint", "Provider=minio"},
		{"bad bool", "UseSSL=maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.ParseStorageConnectionString(tt.input)
			assert.Error(t, err)
		})
	}
}
