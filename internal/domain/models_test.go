package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pdfcompress/internal/domain"
)

func TestReductionPercent(t *testing.T) {
	tests := []struct {
		name       string
		original   int64
		compressed int64
		want       float64
	}{
		{"half", 1000, 500, 50},
		{"rounded to two decimals", 3, 1, 66.67},
		{"no change", 1000, 1000, 0},
		{"grew", 1000, 1010, -1},
		{"empty original", 0, 10, 0},
		{"everything removed", 5000000, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, domain.ReductionPercent(tt.original, tt.compressed), 1e-9)
		})
	}
}

func TestNewCompressionResult(t *testing.T) {
	res := domain.NewCompressionResult("report.pdf", 200, []byte("0123456789"))

	assert.Equal(t, "report.pdf", res.OriginalName)
	assert.Equal(t, "compressed_report.pdf", res.Filename)
	assert.Equal(t, int64(200), res.OriginalSize)
	assert.Equal(t, int64(10), res.CompressedSize)
	assert.InDelta(t, 95.0, res.ReductionPercent, 1e-9)
}

func TestParseDeliveryMode(t *testing.T) {
	assert.Equal(t, domain.DeliveryLink, domain.ParseDeliveryMode("link"))
	assert.Equal(t, domain.DeliveryLink, domain.ParseDeliveryMode(" LINK "))
	assert.Equal(t, domain.DeliveryInline, domain.ParseDeliveryMode("inline"))
	assert.Equal(t, domain.DeliveryInline, domain.ParseDeliveryMode(""))
}

func TestDefaultPageSelector(t *testing.T) {
	sel := domain.DefaultPageSelector()
	assert.True(t, sel.SkipFirst)
	assert.True(t, sel.SkipLast)
	assert.Empty(t, sel.IgnorePages)
}

func TestPageSelector_Ignores(t *testing.T) {
	sel := domain.PageSelector{IgnorePages: []domain.PageRange{{From: 2, To: 2}, {From: 5, To: 9}}}

	for _, p := range []int{2, 5, 7, 9} {
		assert.True(t, sel.Ignores(p), "page %d", p)
	}
	for _, p := range []int{0, 1, 3, 4, 10} {
		assert.False(t, sel.Ignores(p), "page %d", p)
	}
	assert.False(t, domain.DefaultPageSelector().Ignores(1))
}

func TestPageSelector_IgnoreSpec(t *testing.T) {
	sel := domain.PageSelector{IgnorePages: []domain.PageRange{{From: 1, To: 1}, {From: 3, To: 5}}}
	assert.Equal(t, "1,3-5", sel.IgnoreSpec())
	assert.Equal(t, "", domain.PageSelector{}.IgnoreSpec())
}
