package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ContentTypePDF is the MIME type of uploads and inline results.
const ContentTypePDF = "application/pdf"

// CompressedPrefix is prepended to the original file name of every result.
const CompressedPrefix = "compressed_"

// DeliveryMode selects how a compression result reaches the client.
type DeliveryMode string

const (
	DeliveryInline DeliveryMode = "inline"
	DeliveryLink   DeliveryMode = "link"
)

// ParseDeliveryMode maps a configuration value to a DeliveryMode. Unknown
// values fall back to inline delivery.
func ParseDeliveryMode(s string) DeliveryMode {
	if strings.EqualFold(strings.TrimSpace(s), string(DeliveryLink)) {
		return DeliveryLink
	}
	return DeliveryInline
}

// PageSelector names the pages a page-level pass would leave untouched.
// Page numbers are 1-based.
type PageSelector struct {
	// IgnorePages is sorted, with no overlapping or adjacent ranges.
	IgnorePages []PageRange `json:"ignore_pages,omitempty"`
	SkipFirst   bool        `json:"skip_first"`
	SkipLast    bool        `json:"skip_last"`
}

// PageRange is an inclusive range of 1-based page numbers.
type PageRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (r PageRange) String() string {
	if r.From == r.To {
		return strconv.Itoa(r.From)
	}
	return strconv.Itoa(r.From) + "-" + strconv.Itoa(r.To)
}

// Ignores reports whether page falls inside one of the ignore ranges.
func (s PageSelector) Ignores(page int) bool {
	i := sort.Search(len(s.IgnorePages), func(i int) bool { return s.IgnorePages[i].To >= page })
	return i < len(s.IgnorePages) && s.IgnorePages[i].From <= page
}

// IgnoreSpec renders the ignore ranges in page specification syntax.
func (s PageSelector) IgnoreSpec() string {
	parts := make([]string, len(s.IgnorePages))
	for i, r := range s.IgnorePages {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// DefaultPageSelector skips the first and last page.
func DefaultPageSelector() PageSelector {
	return PageSelector{SkipFirst: true, SkipLast: true}
}

// PageDecision records whether a page would be excluded and why.
type PageDecision struct {
	Page   int    `json:"page"`
	Skip   bool   `json:"skip"`
	Reason string `json:"reason,omitempty"`
}

// CompressionResult is the re-serialized document plus derived metrics.
type CompressionResult struct {
	OriginalName     string  `json:"original_name"`
	Filename         string  `json:"filename"`
	Data             []byte  `json:"-"`
	OriginalSize     int64   `json:"original_size_bytes"`
	CompressedSize   int64   `json:"compressed_size_bytes"`
	ReductionPercent float64 `json:"reduction_percent"`
}

// NewCompressionResult builds a result and computes its metrics.
func NewCompressionResult(originalName string, originalSize int64, data []byte) *CompressionResult {
	originalName = CleanFilename(originalName)
	compressed := int64(len(data))
	return &CompressionResult{
		OriginalName:     originalName,
		Filename:         CompressedPrefix + originalName,
		Data:             data,
		OriginalSize:     originalSize,
		CompressedSize:   compressed,
		ReductionPercent: ReductionPercent(originalSize, compressed),
	}
}

// ReductionPercent returns (1 - compressed/original) * 100 rounded to two
// decimals. It is negative when the output grew and 0 for an empty original.
func ReductionPercent(original, compressed int64) float64 {
	if original <= 0 {
		return 0
	}
	pct := (1 - float64(compressed)/float64(original)) * 100
	return math.Round(pct*100) / 100
}

// DeliveryRecord describes a result stored for link delivery.
type DeliveryRecord struct {
	Bucket      string    `json:"bucket"`
	BlobName    string    `json:"blob_name"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
	ExpiresIn   string    `json:"expires_in"`
}
