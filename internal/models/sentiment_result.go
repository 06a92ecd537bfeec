package models

type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
)

type ConfidenceBucket string

const (
	BucketHigh   ConfidenceBucket = "high"
	BucketMedium ConfidenceBucket = "medium"
	BucketLow    ConfidenceBucket = "low"
)

// TermWeight is one entry of the word-importance list. Positive weights pull
// the review toward the positive class.
type TermWeight struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

type LexiconBaseline struct {
	Compound float64 `json:"compound"`
	Label    string  `json:"label"`
}

type ClassificationResult struct {
	Label             Label            `json:"label"`
	ConfidencePercent float64          `json:"confidence_percent"`
	Score             float64          `json:"score"`
	Bucket            ConfidenceBucket `json:"bucket"`
	Progress          int              `json:"progress"`
	Banner            string           `json:"banner"`
	TopTerms          []TermWeight     `json:"top_terms,omitempty"`
	Baseline          *LexiconBaseline `json:"baseline,omitempty"`
	Cached            bool             `json:"cached"`
}

// ScoreEntry is what score caches keep for a review.
type ScoreEntry struct {
	Score    float64      `json:"score"`
	TopTerms []TermWeight `json:"top_terms,omitempty"`
}
