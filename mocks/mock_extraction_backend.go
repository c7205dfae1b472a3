package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEntityExtractionBackend is a mock implementation of port.EntityExtractionBackend.
type MockEntityExtractionBackend struct {
	mock.Mock
}

func (m *MockEntityExtractionBackend) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
