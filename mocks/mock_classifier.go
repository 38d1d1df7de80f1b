package mocks

import (
	"github.com/stretchr/testify/mock"

	"invext/internal/domain"
)

// MockClassifier is a mock implementation of layout.Classifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(doc *domain.Document) domain.LayoutCategory {
	args := m.Called(doc)
	return args.Get(0).(domain.LayoutCategory)
}
