package port

import (
	"context"

	"pdfcompress/internal/domain"
)

// PDFReducer abstracts the library-backed size-reduction step.
type PDFReducer interface {
	// Reduce opens the PDF at path, strips its metadata and re-serializes it
	// with garbage collection and deflated streams. The selector never
	// changes the output.
	Reduce(ctx context.Context, path string, selector domain.PageSelector) ([]byte, error)
}
