package sentiment

import (
	"fmt"

	"github.com/spacesedan/sentitrack/internal/models"
)

// A score of exactly POSITIVE_THRESHOLD is negative.
const POSITIVE_THRESHOLD = 0.5

// Bucket thresholds overlap (0.8 passes both the high and medium checks);
// the first matching check wins.
const (
	HIGH_UPPER   = 0.75
	HIGH_LOWER   = 0.25
	MEDIUM_UPPER = 0.6
	MEDIUM_LOWER = 0.4
)

func LabelFor(score float64) models.Label {
	if score > POSITIVE_THRESHOLD {
		return models.LabelPositive
	}
	return models.LabelNegative
}

// ConfidencePercent is the probability of the predicted label, not of the
// positive class.
func ConfidencePercent(score float64, label models.Label) float64 {
	if label == models.LabelPositive {
		return score * 100
	}
	return (1 - score) * 100
}

func BucketFor(score float64) models.ConfidenceBucket {
	if score >= HIGH_UPPER || score <= HIGH_LOWER {
		return models.BucketHigh
	}
	if score >= MEDIUM_UPPER || score <= MEDIUM_LOWER {
		return models.BucketMedium
	}
	return models.BucketLow
}

func Banner(label models.Label, percent float64) string {
	if label == models.LabelPositive {
		return fmt.Sprintf("Positive Review (%.2f%%)", percent)
	}
	return fmt.Sprintf("Negative Review (%.2f%%)", percent)
}

// Progress is the positive probability as a whole percentage for a 0-100
// progress bar.
func Progress(score float64) int {
	p := int(score * 100)
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

func NewResult(score float64) *models.ClassificationResult {
	label := LabelFor(score)
	percent := ConfidencePercent(score, label)

	return &models.ClassificationResult{
		Label:             label,
		ConfidencePercent: percent,
		Score:             score,
		Bucket:            BucketFor(score),
		Progress:          Progress(score),
		Banner:            Banner(label, percent),
	}
}
