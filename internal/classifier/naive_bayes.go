package classifier

import (
	"fmt"

	"github.com/spacesedan/sentitrack/internal/features"
	"github.com/spacesedan/sentitrack/internal/models"
)

// MultinomialNB scores with the joint log likelihood
// log P(c) + sum_i x_i log P(term_i | c), normalized over both classes.
type MultinomialNB struct {
	logPrior [2]float64
	logProb  [2][]float64
	positive int
}

func NewMultinomialNB(file models.ClassifierFile) (*MultinomialNB, error) {
	if len(file.ClassLogPrior) != 2 {
		return nil, fmt.Errorf("%w: expected 2 class_log_prior entries, got %d", ErrInvalidClassifier, len(file.ClassLogPrior))
	}
	if len(file.FeatureLogProb) != 2 {
		return nil, fmt.Errorf("%w: expected 2 feature_log_prob rows, got %d", ErrInvalidClassifier, len(file.FeatureLogProb))
	}
	dim := len(file.FeatureLogProb[0])
	if dim == 0 || len(file.FeatureLogProb[1]) != dim {
		return nil, fmt.Errorf("%w: feature_log_prob rows must be non-empty and equal length", ErrInvalidClassifier)
	}
	if err := checkFinite("class_log_prior", file.ClassLogPrior); err != nil {
		return nil, err
	}
	for c, row := range file.FeatureLogProb {
		if err := checkFinite(fmt.Sprintf("feature_log_prob[%d]", c), row); err != nil {
			return nil, err
		}
	}

	positive, err := positiveIndex(file)
	if err != nil {
		return nil, err
	}

	return &MultinomialNB{
		logPrior: [2]float64{file.ClassLogPrior[0], file.ClassLogPrior[1]},
		logProb:  [2][]float64{file.FeatureLogProb[0], file.FeatureLogProb[1]},
		positive: positive,
	}, nil
}

func (m *MultinomialNB) Dimension() int {
	return len(m.logProb[0])
}

func (m *MultinomialNB) PredictProbability(vec features.Vector) (float64, error) {
	if err := checkVector(vec, m.Dimension()); err != nil {
		return 0, err
	}

	pos, neg := m.positive, 1-m.positive
	jllPos := m.logPrior[pos] + vec.Dot(m.logProb[pos])
	jllNeg := m.logPrior[neg] + vec.Dot(m.logProb[neg])

	// P(pos) = 1 / (1 + exp(jllNeg - jllPos))
	return checkProbability(sigmoid(jllPos - jllNeg))
}

func (m *MultinomialNB) Contributions(vec features.Vector) ([]Contribution, error) {
	if err := checkVector(vec, m.Dimension()); err != nil {
		return nil, err
	}

	pos, neg := m.logProb[m.positive], m.logProb[1-m.positive]
	out := make([]Contribution, 0, vec.NNZ())
	for i, idx := range vec.Indices {
		out = append(out, Contribution{Index: idx, Weight: vec.Values[i] * (pos[idx] - neg[idx])})
	}
	return out, nil
}
