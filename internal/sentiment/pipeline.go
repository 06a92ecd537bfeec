// Package sentiment runs one review through the loaded artifacts: vectorize,
// score, label, bucket and record the score in the session history.
package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/spacesedan/sentitrack/internal/artifacts"
	"github.com/spacesedan/sentitrack/internal/classifier"
	"github.com/spacesedan/sentitrack/internal/features"
	"github.com/spacesedan/sentitrack/internal/models"
	"github.com/spacesedan/sentitrack/internal/session"
)

var (
	// ErrEmptyInput is the idle state: nothing was submitted, nothing was
	// computed or recorded.
	ErrEmptyInput    = errors.New("empty review")
	ErrReviewTooLong = errors.New("review too long")
)

type Pipeline struct {
	vectorizer  Vectorizer
	classifier  Classifier
	fingerprint string

	maxChars  int
	topTerms  int
	cache     ScoreCache
	publisher Publisher
	baseline  Baseline
}

type Option func(*Pipeline)

// WithMaxChars rejects reviews longer than n runes. Zero disables the limit.
func WithMaxChars(n int) Option {
	return func(p *Pipeline) { p.maxChars = n }
}

func WithTopTerms(n int) Option {
	return func(p *Pipeline) { p.topTerms = n }
}

func WithScoreCache(c ScoreCache) Option {
	return func(p *Pipeline) { p.cache = c }
}

func WithPublisher(pub Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

func WithBaseline(b Baseline) Option {
	return func(p *Pipeline) { p.baseline = b }
}

// WithFingerprint identifies the artifact pair for score cache keys. Without
// one the score cache is not consulted.
func WithFingerprint(fp string) Option {
	return func(p *Pipeline) { p.fingerprint = fp }
}

func New(vec Vectorizer, clf Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{vectorizer: vec, classifier: clf}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func FromArtifacts(a *artifacts.Artifacts, opts ...Option) *Pipeline {
	opts = append([]Option{WithFingerprint(a.Fingerprint)}, opts...)
	return New(a.Vectorizer, a.Classifier, opts...)
}

// Classify scores review and appends the score to the session history.
// Blank input returns ErrEmptyInput; failures leave the history untouched.
func (p *Pipeline) Classify(ctx context.Context, sess *session.Session, review string) (*models.ClassificationResult, error) {
	review = strings.TrimSpace(review)
	if review == "" {
		return nil, ErrEmptyInput
	}

	chars := utf8.RuneCountInString(review)
	if p.maxChars > 0 && chars > p.maxChars {
		return nil, fmt.Errorf("%w: %d characters, limit is %d", ErrReviewTooLong, chars, p.maxChars)
	}

	var (
		result *models.ClassificationResult
		err    error
	)
	sess.Do(func(h *session.History) {
		result, err = p.score(ctx, review)
		if err == nil {
			h.Append(result.Score)
		}
	})
	if err != nil {
		slog.Warn("[Pipeline] Classification failed",
			slog.String("session_id", sess.ID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if p.baseline != nil {
		baseline := p.baseline.Score(review)
		result.Baseline = &baseline
	}

	p.publish(ctx, sess.ID, chars, result)
	return result, nil
}

func (p *Pipeline) score(ctx context.Context, review string) (*models.ClassificationResult, error) {
	key := p.cacheKey(review)
	if key != "" {
		if entry, ok := p.cache.Get(ctx, key); ok && validScore(entry.Score) {
			result := NewResult(entry.Score)
			result.TopTerms = entry.TopTerms
			result.Cached = true
			return result, nil
		}
	}

	vec, err := p.vectorizer.Transform(review)
	if err != nil {
		if !errors.Is(err, classifier.ErrInference) {
			err = fmt.Errorf("%w: vectorize: %w", classifier.ErrInference, err)
		}
		return nil, err
	}

	score, err := p.classifier.PredictProbability(vec)
	if err != nil {
		if !errors.Is(err, classifier.ErrInference) {
			err = fmt.Errorf("%w: %w", classifier.ErrInference, err)
		}
		return nil, err
	}
	if !validScore(score) {
		return nil, fmt.Errorf("%w: classifier returned %v", classifier.ErrInference, score)
	}

	result := NewResult(score)
	result.TopTerms = p.explain(vec)

	if key != "" {
		p.cache.Put(ctx, key, models.ScoreEntry{Score: score, TopTerms: result.TopTerms})
	}
	return result, nil
}

// explain lists the review's strongest terms. Explanations are best effort
// and never fail a classification.
func (p *Pipeline) explain(vec features.Vector) []models.TermWeight {
	if p.topTerms <= 0 {
		return nil
	}
	ex, ok := p.classifier.(Explainer)
	if !ok {
		return nil
	}

	contribs, err := ex.Contributions(vec)
	if err != nil {
		slog.Debug("[Pipeline] No term contributions", slog.String("error", err.Error()))
		return nil
	}

	terms := make([]models.TermWeight, 0, len(contribs))
	for _, c := range contribs {
		if c.Weight == 0 {
			continue
		}
		term, ok := p.vectorizer.Term(c.Index)
		if !ok {
			continue
		}
		terms = append(terms, models.TermWeight{Term: term, Weight: c.Weight})
	}

	sort.Slice(terms, func(i, j int) bool {
		wi, wj := math.Abs(terms[i].Weight), math.Abs(terms[j].Weight)
		if wi != wj {
			return wi > wj
		}
		return terms[i].Term < terms[j].Term
	})

	if len(terms) > p.topTerms {
		terms = terms[:p.topTerms]
	}
	return terms
}

func (p *Pipeline) cacheKey(review string) string {
	if p.cache == nil || p.fingerprint == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(review))
	return p.fingerprint[:min(16, len(p.fingerprint))] + ":" + hex.EncodeToString(sum[:])
}

func (p *Pipeline) publish(ctx context.Context, sessionID string, chars int, result *models.ClassificationResult) {
	if p.publisher == nil {
		return
	}

	event := models.SentimentEvent{
		EventID:     uuid.NewString(),
		SessionID:   sessionID,
		Fingerprint: p.fingerprint,
		ReviewChars: chars,
		Score:       result.Score,
		Label:       result.Label,
		Bucket:      result.Bucket,
		Cached:      result.Cached,
		CreatedAt:   time.Now().UTC(),
	}

	if err := p.publisher.Publish(ctx, event); err != nil {
		slog.Warn("[Pipeline] Failed to publish sentiment event",
			slog.String("event_id", event.EventID),
			slog.String("error", err.Error()))
	}
}

func validScore(score float64) bool {
	return !math.IsNaN(score) && score >= 0 && score <= 1
}
