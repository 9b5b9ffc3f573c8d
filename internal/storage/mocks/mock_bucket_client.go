package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockBucketClient struct {
	mock.Mock
}

func (m *MockBucketClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}
