package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docdigest/internal/storage"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Get(ctx context.Context, key string) (*storage.Object, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}

func (m *MockSource) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
