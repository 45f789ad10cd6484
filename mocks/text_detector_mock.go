package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTextDetector struct {
	mock.Mock
}

func (m *MockTextDetector) DetectLines(ctx context.Context, bucket, key string) ([]string, error) {
	args := m.Called(ctx, bucket, key)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}
