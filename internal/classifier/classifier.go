package classifier

import (
	"errors"
	"fmt"
	"math"

	"github.com/spacesedan/sentitrack/internal/features"
	"github.com/spacesedan/sentitrack/internal/models"
)

var (
	// ErrInference marks a feature vector the model cannot score, or a score
	// outside [0,1].
	ErrInference         = errors.New("inference error")
	ErrInvalidClassifier = errors.New("invalid classifier")
)

// Contribution is how much one feature moved the decision toward the
// positive class.
type Contribution struct {
	Index  int
	Weight float64
}

// Model is a fitted binary classifier.
type Model interface {
	Dimension() int
	PredictProbability(vec features.Vector) (float64, error)
	Contributions(vec features.Vector) ([]Contribution, error)
}

// New builds the model described by a decoded classifier file.
func New(file models.ClassifierFile) (Model, error) {
	switch file.Type {
	case models.CLASSIFIER_TYPE_LOGISTIC, "":
		return NewLogisticRegression(file)
	case models.CLASSIFIER_TYPE_MULTINOMIAL_NB:
		return NewMultinomialNB(file)
	default:
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidClassifier, file.Type)
	}
}

func positiveIndex(file models.ClassifierFile) (int, error) {
	if len(file.Classes) != 0 && len(file.Classes) != 2 {
		return 0, fmt.Errorf("%w: expected 2 classes, got %d", ErrInvalidClassifier, len(file.Classes))
	}
	if file.PositiveClass == nil {
		return 1, nil
	}
	idx := *file.PositiveClass
	if idx != 0 && idx != 1 {
		return 0, fmt.Errorf("%w: positive_class must be 0 or 1, got %d", ErrInvalidClassifier, idx)
	}
	return idx, nil
}

func checkVector(vec features.Vector, dim int) error {
	if vec.Dim != dim {
		return fmt.Errorf("%w: feature vector has %d dimensions, classifier expects %d", ErrInference, vec.Dim, dim)
	}
	if !vec.InBounds() {
		return fmt.Errorf("%w: feature vector has indices outside [0,%d)", ErrInference, dim)
	}
	return nil
}

func checkProbability(p float64) (float64, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: probability %v outside [0,1]", ErrInference, p)
	}
	return p, nil
}

func checkFinite(name string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s[%d] = %v", ErrInvalidClassifier, name, i, v)
		}
	}
	return nil
}
