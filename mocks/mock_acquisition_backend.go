package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"schedo/internal/port"
)

// MockTextAcquisitionBackend is a mock implementation of port.TextAcquisitionBackend.
type MockTextAcquisitionBackend struct {
	mock.Mock
}

func (m *MockTextAcquisitionBackend) ExtractText(ctx context.Context, image []byte) (*port.OCRResult, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.OCRResult), args.Error(1)
}
