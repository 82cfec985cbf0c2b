package domain

import "errors"

var (
	ErrMissingFile          = errors.New("file field is required")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrInvalidPageSelector  = errors.New("invalid page selector")
	ErrInvalidPDF           = errors.New("document could not be opened as PDF")
	ErrStorageNotConfigured = errors.New("storage connection string is not configured")
	ErrUploadFailed         = errors.New("file upload to storage failed")
)
