package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"schedo/internal/domain"
	"schedo/internal/service"
)

// MockAppointmentService is a mock implementation of service.AppointmentService.
type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) Parse(ctx context.Context, input domain.RawInput) (*service.ParseResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ParseResult), args.Error(1)
}

func (m *MockAppointmentService) Extract(ctx context.Context, rawText string) (*service.ExtractResult, error) {
	args := m.Called(ctx, rawText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractResult), args.Error(1)
}

func (m *MockAppointmentService) Normalize(entities domain.Entities) *service.NormalizeResult {
	args := m.Called(entities)
	return args.Get(0).(*service.NormalizeResult)
}

func (m *MockAppointmentService) Schedule(ctx context.Context, input domain.RawInput) (*domain.ScheduleResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleResult), args.Error(1)
}
