package minio

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"pdfcompress/internal/config"
	"pdfcompress/internal/port"
)

type minioClient struct {
	cl     *minio.Client
	region string
}

// NewMinIOClient creates an ObjectStorage backed by any S3-compatible
// endpoint reachable through minio-go, including the local emulator.
func NewMinIOClient(conn *config.StorageConnection) (port.ObjectStorage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(conn.AccessKey, conn.SecretKey, ""),
		Secure: conn.UseSSL,
		Region: conn.Region,
	}
	if conn.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(conn.Endpoint, opts)
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &minioClient{cl: cl, region: conn.Region}, nil
}

func (c *minioClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	ok, err := c.cl.BucketExists(ctx, bucket)
	if err != nil {
		return false, fmt.Errorf("minio bucket exists: %w", err)
	}
	return ok, nil
}

func (c *minioClient) CreateBucket(ctx context.Context, bucket string) error {
	err := c.cl.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: c.region})
	if err != nil {
		switch minio.ToErrorResponse(err).Code {
		case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
			return nil
		}
		return fmt.Errorf("minio make bucket: %w", err)
	}
	return nil
}

func (c *minioClient) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	size := input.Size
	if size <= 0 {
		size = -1
	}
	info, err := c.cl.PutObject(ctx, input.Bucket, input.Key, input.Body, size, minio.PutObjectOptions{
		ContentType: input.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("minio upload: %w", err)
	}
	return &port.UploadOutput{
		Location: info.Location,
		ETag:     info.ETag,
	}, nil
}

func (c *minioClient) Delete(ctx context.Context, bucket, key string) error {
	if err := c.cl.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio delete: %w", err)
	}
	return nil
}

func (c *minioClient) GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	u, err := c.cl.PresignedGetObject(ctx, bucket, key, time.Duration(expirySeconds)*time.Second, url.Values{})
	if err != nil {
		return "", fmt.Errorf("minio presign: %w", err)
	}
	return u.String(), nil
}
