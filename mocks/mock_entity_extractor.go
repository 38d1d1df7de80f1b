package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invext/internal/domain"
)

// MockEntityExtractor is a mock implementation of ner.Extractor.
type MockEntityExtractor struct {
	mock.Mock
}

func (m *MockEntityExtractor) Extract(ctx context.Context, doc *domain.Document) (domain.FieldMap, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.FieldMap), args.Error(1)
}
