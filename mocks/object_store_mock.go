package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, bucket, key, contentType, md5 string, body []byte) error {
	args := m.Called(ctx, bucket, key, contentType, md5, body)
	return args.Error(0)
}
