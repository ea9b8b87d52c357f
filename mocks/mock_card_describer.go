package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cardintake/internal/port"
)

// MockCardDescriber is a mock implementation of port.CardDescriber.
type MockCardDescriber struct {
	mock.Mock
}

func (m *MockCardDescriber) Describe(ctx context.Context, input port.DescribeInput) (*port.DescribeOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DescribeOutput), args.Error(1)
}
