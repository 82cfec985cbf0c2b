package storage

import (
	"context"
	"fmt"

	"pdfcompress/internal/config"
	"pdfcompress/internal/port"
	"pdfcompress/internal/storage/minio"
	"pdfcompress/internal/storage/s3"
)

// ProviderFactory creates an ObjectStorage from a parsed connection string.
type ProviderFactory func(ctx context.Context, conn *config.StorageConnection) (port.ObjectStorage, error)

var providers = map[string]ProviderFactory{
	config.StorageProviderS3:    s3.NewS3Client,
	config.StorageProviderMinIO: newMinIO,
}

func newMinIO(_ context.Context, conn *config.StorageConnection) (port.ObjectStorage, error) {
	return minio.NewMinIOClient(conn)
}

// New creates the ObjectStorage described by cfg. It returns nil without an
// error when no connection string is configured; link delivery then fails
// per request instead of at startup.
func New(ctx context.Context, cfg *config.StorageConfig) (port.ObjectStorage, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	conn, err := config.ParseStorageConnectionString(cfg.ConnectionString)
	if err != nil {
		return nil, err
	}
	factory, ok := providers[conn.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown storage provider: %s", conn.Provider)
	}
	return factory(ctx, conn)
}
