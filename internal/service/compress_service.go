package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"pdfcompress/internal/config"
	"pdfcompress/internal/domain"
	"pdfcompress/internal/port"
)

// CompressInput is the DTO for a compression request.
type CompressInput struct {
	File     io.Reader
	Filename string
	// Size is the declared upload size; the bytes actually copied are checked too.
	Size  int64
	Pages domain.PageSelector
}

// CompressService defines the PDF compression contract.
type CompressService interface {
	Compress(ctx context.Context, input CompressInput) (*domain.CompressionResult, error)
	Deliver(ctx context.Context, result *domain.CompressionResult) (*domain.DeliveryRecord, error)
}

type compressService struct {
	reducer    port.PDFReducer
	storage    port.ObjectStorage
	cfg        *config.CompressConfig
	storageCfg *config.StorageConfig
	logger     log.Logger
	now        func() time.Time
}

// NewCompressService creates a new CompressService implementation. storage may
// be nil, in which case Deliver fails with domain.ErrStorageNotConfigured.
func NewCompressService(
	reducer port.PDFReducer,
	storage port.ObjectStorage,
	cfg *config.CompressConfig,
	storageCfg *config.StorageConfig,
	logger log.Logger,
) CompressService {
	return &compressService{
		reducer:    reducer,
		storage:    storage,
		cfg:        cfg,
		storageCfg: storageCfg,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *compressService) Compress(ctx context.Context, input CompressInput) (*domain.CompressionResult, error) {
	if input.File == nil {
		return nil, domain.ErrMissingFile
	}
	if input.Size > s.cfg.MaxUploadBytes {
		return nil, s.tooLarge(input.Size)
	}

	var data []byte
	var written int64
	err := withTempFile(s.cfg.TempDir, io.LimitReader(input.File, s.cfg.MaxUploadBytes+1), func(path string, n int64) error {
		written = n
		if n > s.cfg.MaxUploadBytes {
			return s.tooLarge(n)
		}
		level.Info(s.logger).Log(
			"msg", "compressing",
			"file", input.Filename,
			"size", humanize.IBytes(uint64(n)),
			"skip_first", input.Pages.SkipFirst,
			"skip_last", input.Pages.SkipLast,
			"ignore_pages", input.Pages.IgnoreSpec(),
		)
		var err error
		data, err = s.reducer.Reduce(ctx, path, input.Pages)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrFileTooLarge) {
			level.Error(s.logger).Log("msg", "compression failed", "file", input.Filename, "err", err)
		}
		return nil, err
	}

	result := domain.NewCompressionResult(input.Filename, written, data)
	level.Info(s.logger).Log(
		"msg", "compressed",
		"file", result.Filename,
		"original", humanize.IBytes(uint64(result.OriginalSize)),
		"compressed", humanize.IBytes(uint64(result.CompressedSize)),
		"reduction_percent", result.ReductionPercent,
	)
	if s.cfg.LargeResultWarnBytes > 0 && result.CompressedSize > s.cfg.LargeResultWarnBytes {
		level.Warn(s.logger).Log(
			"msg", "large result",
			"file", result.Filename,
			"compressed", humanize.Bytes(uint64(result.CompressedSize)),
		)
	}
	return result, nil
}

func (s *compressService) tooLarge(size int64) error {
	return fmt.Errorf("%w: %s exceeds the %s limit", domain.ErrFileTooLarge,
		humanize.IBytes(uint64(size)), humanize.IBytes(uint64(s.cfg.MaxUploadBytes)))
}

func (s *compressService) Deliver(ctx context.Context, result *domain.CompressionResult) (*domain.DeliveryRecord, error) {
	if s.storage == nil {
		return nil, domain.ErrStorageNotConfigured
	}

	bucket := s.storageCfg.Bucket
	if err := s.ensureBucket(ctx, bucket); err != nil {
		return nil, err
	}

	blobName := fmt.Sprintf("%s_%s%s", uuid.New(), domain.CompressedPrefix, domain.SanitizeFilename(result.OriginalName))

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      bucket,
		Key:         blobName,
		Body:        bytes.NewReader(result.Data),
		ContentType: domain.ContentTypePDF,
		Size:        result.CompressedSize,
	})
	if err != nil {
		level.Error(s.logger).Log("msg", "upload failed", "bucket", bucket, "blob", blobName, "err", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	expiry := s.storageCfg.PresignExpiry
	url, err := s.storage.GetPresignedURL(ctx, bucket, blobName, expiry)
	if err != nil {
		level.Error(s.logger).Log("msg", "presign failed, removing blob", "bucket", bucket, "blob", blobName, "err", err)
		if delErr := s.storage.Delete(ctx, bucket, blobName); delErr != nil {
			level.Warn(s.logger).Log("msg", "orphaned blob", "bucket", bucket, "blob", blobName, "err", delErr)
		}
		return nil, fmt.Errorf("generating download url: %w", err)
	}

	ttl := time.Duration(expiry) * time.Second
	record := &domain.DeliveryRecord{
		Bucket:      bucket,
		BlobName:    blobName,
		DownloadURL: url,
		ExpiresAt:   s.now().Add(ttl).UTC(),
		ExpiresIn:   FormatExpiry(ttl),
	}
	level.Info(s.logger).Log("msg", "delivered", "bucket", bucket, "blob", blobName, "expires_in", record.ExpiresIn)
	return record, nil
}

// ensureBucket creates the bucket when it does not exist yet.
func (s *compressService) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := s.storage.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	level.Info(s.logger).Log("msg", "creating bucket", "bucket", bucket)
	if err := s.storage.CreateBucket(ctx, bucket); err != nil {
		return fmt.Errorf("creating bucket %s: %w", bucket, err)
	}
	return nil
}

// FormatExpiry renders a presign lifetime the way clients display it, e.g.
// "1 hour", "2 hours" or "90 minutes".
func FormatExpiry(d time.Duration) string {
	plural := func(n int64, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s", unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int64(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int64(d/time.Minute), "minute")
	default:
		return plural(int64(d/time.Second), "second")
	}
}

// withTempFile copies r into a new temp file in dir, calls fn with its path and
// the number of bytes written, and removes the file before returning.
func withTempFile(dir string, r io.Reader, fn func(path string, n int64) error) error {
	f, err := os.CreateTemp(dir, "upload-*.pdf")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	return fn(path, n)
}
