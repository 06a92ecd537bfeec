package sentiment

import (
	"github.com/jonreiter/govader"

	"github.com/spacesedan/sentitrack/internal/models"
	"github.com/spacesedan/sentitrack/internal/vectorizer"
)

const (
	VADER_POSITIVE_CUTOFF = 0.20
	VADER_NEGATIVE_CUTOFF = -0.20
)

// LexiconScorer reports the VADER compound score next to the model score. It
// never influences the model label.
type LexiconScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (l *LexiconScorer) Score(text string) models.LexiconBaseline {
	plainText := vectorizer.ConvertMarkdownToText(text)
	score := l.analyzer.PolarityScores(plainText).Compound

	var label string
	if score >= VADER_POSITIVE_CUTOFF {
		label = "positive"
	} else if score <= VADER_NEGATIVE_CUTOFF {
		label = "negative"
	} else {
		label = "neutral"
	}

	return models.LexiconBaseline{Compound: score, Label: label}
}
