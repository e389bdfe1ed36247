package handlers

import (
	"context"

	"github.com/riftlab/predict-api/internal/features"
	"github.com/riftlab/predict-api/internal/models"
)

// MockIngestQueue
type MockIngestQueue struct {
	EnqueueFunc    func(match *models.RawMatch) bool
	QueueDepthFunc func() int
}

func (m *MockIngestQueue) Enqueue(match *models.RawMatch) bool {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(match)
	}
	return true
}

func (m *MockIngestQueue) QueueDepth() int {
	if m.QueueDepthFunc != nil {
		return m.QueueDepthFunc()
	}
	return 0
}

// MockDatasetPinger
type MockDatasetPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockDatasetPinger) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// MockRowPreparer
type MockRowPreparer struct {
	PrepareFunc        func(rows []features.Row) (*features.Matrix, error)
	PrepareNumericFunc func(rows []features.Row) (*features.Matrix, error)
}

func (m *MockRowPreparer) Prepare(rows []features.Row) (*features.Matrix, error) {
	if m.PrepareFunc != nil {
		return m.PrepareFunc(rows)
	}
	return &features.Matrix{}, nil
}

func (m *MockRowPreparer) PrepareNumeric(rows []features.Row) (*features.Matrix, error) {
	if m.PrepareNumericFunc != nil {
		return m.PrepareNumericFunc(rows)
	}
	return &features.Matrix{}, nil
}

// MockClassifier
type MockClassifier struct {
	PredictFunc        func(mat *features.Matrix) ([]int, []float64, error)
	HasCompositionFunc func() bool
	WidthFunc          func() int
}

func (m *MockClassifier) Predict(mat *features.Matrix) ([]int, []float64, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(mat)
	}
	return nil, nil, nil
}

func (m *MockClassifier) HasComposition() bool {
	if m.HasCompositionFunc != nil {
		return m.HasCompositionFunc()
	}
	return false
}

func (m *MockClassifier) Width() int {
	if m.WidthFunc != nil {
		return m.WidthFunc()
	}
	return 0
}
