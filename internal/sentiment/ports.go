package sentiment

import (
	"context"

	"github.com/spacesedan/sentitrack/internal/classifier"
	"github.com/spacesedan/sentitrack/internal/features"
	"github.com/spacesedan/sentitrack/internal/models"
)

type Vectorizer interface {
	Transform(text string) (features.Vector, error)
	Term(index int) (string, bool)
}

type Classifier interface {
	PredictProbability(vec features.Vector) (float64, error)
}

// Explainer is implemented by classifiers that can attribute a score to
// individual features.
type Explainer interface {
	Contributions(vec features.Vector) ([]classifier.Contribution, error)
}

// ScoreCache stores scored reviews keyed by artifact fingerprint and review
// digest. Implementations treat lookup failures as misses.
type ScoreCache interface {
	Get(ctx context.Context, key string) (models.ScoreEntry, bool)
	Put(ctx context.Context, key string, entry models.ScoreEntry)
}

type Publisher interface {
	Publish(ctx context.Context, event models.SentimentEvent) error
}

type Baseline interface {
	Score(text string) models.LexiconBaseline
}
