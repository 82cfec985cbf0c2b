package handler

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"pdfcompress/internal/config"
	"pdfcompress/internal/domain"
	"pdfcompress/internal/pdf"
	"pdfcompress/internal/service"
)

// multipartOverhead is the room allowed on top of the upload cap for
// boundaries, part headers and other form fields.
const multipartOverhead int64 = 1 << 20

// LinkResponse is the body returned when the result is delivered as a
// time-limited download link.
type LinkResponse struct {
	DownloadURL         string    `json:"download_url" example:"https://bucket.s3.amazonaws.com/3f2c..._compressed_report.pdf?X-Amz-Expires=3600"`
	Filename            string    `json:"filename" example:"compressed_report.pdf"`
	BlobName            string    `json:"blob_name" example:"3f2c9a0e-8c1b-4d6e-9f3a-1b2c3d4e5f60_compressed_report.pdf"`
	Size                int64     `json:"size" example:"482133"`
	OriginalSizeBytes   int64     `json:"original_size_bytes" example:"1048576"`
	CompressedSizeBytes int64     `json:"compressed_size_bytes" example:"482133"`
	ReductionPercent    float64   `json:"reduction_percent" example:"54.02"`
	ExpiresIn           string    `json:"expires_in" example:"1 hour"`
	ExpiresAt           time.Time `json:"expires_at"`
}

// CompressHandler handles the PDF compression endpoints.
type CompressHandler struct {
	compressService service.CompressService
	cfg             *config.CompressConfig
	defaultMode     domain.DeliveryMode
	logger          log.Logger
}

// NewCompressHandler creates a new CompressHandler. cfg.Delivery selects how
// CompressPDF returns results.
func NewCompressHandler(compressService service.CompressService, cfg *config.CompressConfig, logger log.Logger) *CompressHandler {
	return &CompressHandler{
		compressService: compressService,
		cfg:             cfg,
		defaultMode:     domain.ParseDeliveryMode(cfg.Delivery),
		logger:          logger,
	}
}

// CompressPDF handles POST /api/compress_pdf
// @Summary Compress a PDF
// @Description Strips document metadata and re-serializes the PDF with unused objects removed and streams deflated.
// @Description The result is returned inline unless the server is configured for link delivery.
// @Tags compress
// @Accept multipart/form-data
// @Produce application/pdf
// @Param file formData file true "PDF to compress (max 100 MiB)"
// @Param skip_first query bool false "Leave the first page untouched" default(true)
// @Param skip_last query bool false "Leave the last page untouched" default(true)
// @Param ignore_pages query string false "Additional pages to leave untouched, e.g. 2,4-6 (pages 1-100000)"
// @Success 200 {file} binary "Compressed PDF"
// @Failure 400 {object} ErrorResponseBody "Missing file, file too large or invalid page selector"
// @Failure 401 {object} ErrorResponseBody "Missing or invalid function key"
// @Failure 500 {object} ErrorResponseBody "Processing failure"
// @Security FunctionKey
// @Router /api/compress_pdf [post]
func (h *CompressHandler) CompressPDF(c *gin.Context) {
	h.compress(c, h.defaultMode)
}

// CompressPDFBlob handles POST /api/compress_pdf_blob
// @Summary Compress a PDF and return a download link
// @Description Same processing as compress_pdf; the result is uploaded to blob storage and a presigned URL valid for one hour is returned.
// @Tags compress
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF to compress (max 100 MiB)"
// @Param skip_first query bool false "Leave the first page untouched" default(true)
// @Param skip_last query bool false "Leave the last page untouched" default(true)
// @Param ignore_pages query string false "Additional pages to leave untouched, e.g. 2,4-6 (pages 1-100000)"
// @Success 200 {object} LinkResponse "Download link"
// @Failure 400 {object} ErrorResponseBody "Missing file, file too large or invalid page selector"
// @Failure 401 {object} ErrorResponseBody "Missing or invalid function key"
// @Failure 500 {object} ErrorResponseBody "Processing, upload or storage configuration failure"
// @Security FunctionKey
// @Router /api/compress_pdf_blob [post]
func (h *CompressHandler) CompressPDFBlob(c *gin.Context) {
	h.compress(c, domain.DeliveryLink)
}

func (h *CompressHandler) compress(c *gin.Context, mode domain.DeliveryMode) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes+multipartOverhead)

	sel, err := parsePageSelector(c)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	file, header, err := h.formFile(c)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	defer func() {
		_ = file.Close()
		_ = c.Request.MultipartForm.RemoveAll()
	}()

	result, err := h.compressService.Compress(c.Request.Context(), service.CompressInput{
		File:     file,
		Filename: header.Filename,
		Size:     header.Size,
		Pages:    sel,
	})
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	if mode == domain.DeliveryLink {
		h.respondLink(c, result)
		return
	}
	respondInline(c, result)
}

// formFile parses the multipart body and returns the "file" part.
func (h *CompressHandler) formFile(c *gin.Context) (multipart.File, *multipart.FileHeader, error) {
	memory := h.cfg.MultipartMemoryBytes
	if memory <= 0 {
		memory = 32 << 20
	}
	if err := c.Request.ParseMultipartForm(memory); err != nil {
		if isBodyTooLarge(err) {
			return nil, nil, fmt.Errorf("%w: request body exceeds %s", domain.ErrFileTooLarge,
				humanize.IBytes(uint64(h.cfg.MaxUploadBytes)))
		}
		return nil, nil, domain.ErrMissingFile
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		_ = c.Request.MultipartForm.RemoveAll()
		return nil, nil, domain.ErrMissingFile
	}
	return file, header, nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

func respondInline(c *gin.Context, result *domain.CompressionResult) {
	c.DataFromReader(http.StatusOK, result.CompressedSize, domain.ContentTypePDF, bytes.NewReader(result.Data), map[string]string{
		"Content-Disposition": "attachment; filename=" + result.Filename,
		"Cache-Control":       "no-cache",
		"X-Original-Size":     strconv.FormatInt(result.OriginalSize, 10),
		"X-Compressed-Size":   strconv.FormatInt(result.CompressedSize, 10),
		"X-Reduction-Percent": strconv.FormatFloat(result.ReductionPercent, 'f', 2, 64),
	})
}

func (h *CompressHandler) respondLink(c *gin.Context, result *domain.CompressionResult) {
	record, err := h.compressService.Deliver(c.Request.Context(), result)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, LinkResponse{
		DownloadURL:         record.DownloadURL,
		Filename:            result.Filename,
		BlobName:            record.BlobName,
		Size:                result.CompressedSize,
		OriginalSizeBytes:   result.OriginalSize,
		CompressedSizeBytes: result.CompressedSize,
		ReductionPercent:    result.ReductionPercent,
		ExpiresIn:           record.ExpiresIn,
		ExpiresAt:           record.ExpiresAt,
	})
}

// parsePageSelector reads skip_first, skip_last and ignore_pages. The flags
// default to true and are true only for a case-insensitive "true".
func parsePageSelector(c *gin.Context) (domain.PageSelector, error) {
	pages, err := pdf.ParsePageSpec(c.Query("ignore_pages"))
	if err != nil {
		return domain.PageSelector{}, err
	}
	return domain.PageSelector{
		IgnorePages: pages,
		SkipFirst:   queryFlag(c, "skip_first"),
		SkipLast:    queryFlag(c, "skip_last"),
	}, nil
}

func queryFlag(c *gin.Context, name string) bool {
	v, ok := c.GetQuery(name)
	if !ok {
		return true
	}
	return strings.EqualFold(v, "true")
}
