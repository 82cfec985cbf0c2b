package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pdfcompress/internal/domain"
)

// MockPDFReducer is a mock implementation of port.PDFReducer.
type MockPDFReducer struct {
	mock.Mock
}

func (m *MockPDFReducer) Reduce(ctx context.Context, path string, selector domain.PageSelector) ([]byte, error) {
	args := m.Called(ctx, path, selector)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
