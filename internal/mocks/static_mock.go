package mocks

import (
	"github.com/quantmind-br/assetmanifest/internal/manifest"
	"github.com/stretchr/testify/mock"
)

// MockURLResolver mocks the static.URLResolver interface
type MockURLResolver struct {
	mock.Mock
}

// URL mocks static URL resolution
func (m *MockURLResolver) URL(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

// MockSource mocks the tags.Source interface
type MockSource struct {
	mock.Mock
}

// Get mocks fetching the current manifest snapshot
func (m *MockSource) Get() (*manifest.Manifest, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*manifest.Manifest), args.Error(1)
}
