package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockMetricsCollectorForTest creates a new mock MetricsCollector for testing
func NewMockMetricsCollectorForTest(t *testing.T) *MockMetricsCollector {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockMetricsCollector(ctrl)
}

// NewMockCartCacheForTest creates a new mock checkout CartCache for testing
func NewMockCartCacheForTest(t *testing.T) *MockCartCache {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockCartCache(ctrl)
}
