package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docdigest/internal/model"
)

type MockDigitizeService struct {
	mock.Mock
}

func (m *MockDigitizeService) Process(ctx context.Context, doc model.Document) (*model.ProcessResult, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProcessResult), args.Error(1)
}

func (m *MockDigitizeService) Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TranslationResult), args.Error(1)
}

func (m *MockDigitizeService) Explain(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockDigitizeService) Export(ctx context.Context, req model.ExportRequest) (*model.ExportResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExportResult), args.Error(1)
}
