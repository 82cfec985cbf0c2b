package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pdfcompress/internal/domain"
	"pdfcompress/internal/service"
)

// MockCompressService is a mock implementation of service.CompressService.
type MockCompressService struct {
	mock.Mock
}

func (m *MockCompressService) Compress(ctx context.Context, input service.CompressInput) (*domain.CompressionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompressionResult), args.Error(1)
}

func (m *MockCompressService) Deliver(ctx context.Context, result *domain.CompressionResult) (*domain.DeliveryRecord, error) {
	args := m.Called(ctx, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryRecord), args.Error(1)
}
