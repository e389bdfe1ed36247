// Package predict serves win predictions from a pre-trained classifier
// head. Training happens offline; this package only loads the serialized
// weights and scores prepared feature matrices.
package predict

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/riftlab/predict-api/internal/features"
)

// Classifier scores a prepared feature matrix and returns one class per
// row: the 0-based index of the predicted winning team.
type Classifier interface {
	Predict(m *features.Matrix) ([]int, []float64, error)
	HasComposition() bool
	Width() int
}

// modelFile is the on-disk weights document.
type modelFile struct {
	Weights        []float64 `json:"weights"`
	Intercept      float64   `json:"intercept"`
	HasComposition bool      `json:"has_composition"`
}

// LogisticModel is a logistic-regression head over the prepared feature
// columns. Immutable after load; safe for concurrent use.
type LogisticModel struct {
	weights     []float64
	intercept   float64
	composition bool
}

// LoadModel reads a weights document from disk.
func LoadModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	var mf modelFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if len(mf.Weights) == 0 {
		return nil, fmt.Errorf("model %s declares no weights", path)
	}

	return &LogisticModel{
		weights:     mf.Weights,
		intercept:   mf.Intercept,
		composition: mf.HasComposition,
	}, nil
}

// NewLogisticModel builds a model directly from weights; used by tests and
// tooling.
func NewLogisticModel(weights []float64, intercept float64, composition bool) *LogisticModel {
	w := make([]float64, len(weights))
	copy(w, weights)
	return &LogisticModel{weights: w, intercept: intercept, composition: composition}
}

// HasComposition reports whether the model was trained on composition and
// carry one-hot columns, which decides the preparer variant to apply.
func (m *LogisticModel) HasComposition() bool {
	return m.composition
}

// Width returns the feature-column count the model expects.
func (m *LogisticModel) Width() int {
	return len(m.weights)
}

// Predict returns the predicted winning-team index and the class-1 win
// probability for every row of the prepared matrix.
func (m *LogisticModel) Predict(mat *features.Matrix) ([]int, []float64, error) {
	if mat == nil || len(mat.Rows) == 0 {
		return nil, nil, features.ErrEmptyBatch
	}
	if mat.Width() != len(m.weights) {
		return nil, nil, &features.SchemaMismatchError{
			WantWidth: len(m.weights),
			GotWidth:  mat.Width(),
		}
	}

	classes := make([]int, len(mat.Rows))
	probs := make([]float64, len(mat.Rows))
	for i, row := range mat.Rows {
		z := m.intercept
		for j, w := range m.weights {
			z += w * row[j]
		}
		p := sigmoid(z)
		probs[i] = p
		if p >= 0.5 {
			classes[i] = 1
		}
	}
	return classes, probs, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
