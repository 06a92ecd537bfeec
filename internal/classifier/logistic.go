package classifier

import (
	"fmt"
	"math"

	"github.com/spacesedan/sentitrack/internal/features"
	"github.com/spacesedan/sentitrack/internal/models"
)

// LogisticRegression scores P(class1) = sigmoid(w·x + b).
type LogisticRegression struct {
	weights   []float64
	intercept float64
	positive  int
}

func NewLogisticRegression(file models.ClassifierFile) (*LogisticRegression, error) {
	if len(file.Coef) != 1 {
		return nil, fmt.Errorf("%w: binary logistic regression needs exactly one coef row, got %d", ErrInvalidClassifier, len(file.Coef))
	}
	if len(file.Coef[0]) == 0 {
		return nil, fmt.Errorf("%w: empty coef row", ErrInvalidClassifier)
	}
	if len(file.Intercept) != 1 {
		return nil, fmt.Errorf("%w: expected one intercept, got %d", ErrInvalidClassifier, len(file.Intercept))
	}
	if err := checkFinite("coef", file.Coef[0]); err != nil {
		return nil, err
	}
	if err := checkFinite("intercept", file.Intercept); err != nil {
		return nil, err
	}

	positive, err := positiveIndex(file)
	if err != nil {
		return nil, err
	}

	return &LogisticRegression{
		weights:   file.Coef[0],
		intercept: file.Intercept[0],
		positive:  positive,
	}, nil
}

func (m *LogisticRegression) Dimension() int {
	return len(m.weights)
}

func (m *LogisticRegression) PredictProbability(vec features.Vector) (float64, error) {
	if err := checkVector(vec, m.Dimension()); err != nil {
		return 0, err
	}

	p := sigmoid(vec.Dot(m.weights) + m.intercept)
	if m.positive == 0 {
		p = 1 - p
	}
	return checkProbability(p)
}

func (m *LogisticRegression) Contributions(vec features.Vector) ([]Contribution, error) {
	if err := checkVector(vec, m.Dimension()); err != nil {
		return nil, err
	}

	sign := 1.0
	if m.positive == 0 {
		sign = -1
	}

	out := make([]Contribution, 0, vec.NNZ())
	for i, idx := range vec.Indices {
		out = append(out, Contribution{Index: idx, Weight: sign * vec.Values[i] * m.weights[idx]})
	}
	return out, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
