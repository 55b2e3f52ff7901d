package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docdigest/internal/llm"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, parts ...llm.Part) (string, error) {
	args := m.Called(ctx, parts)
	return args.String(0), args.Error(1)
}
