// Package app assembles the inference session from configuration: artifacts,
// pipeline, score cache and the optional result sinks.
package app

import (
	"context"
	"log/slog"

	"github.com/spacesedan/sentitrack/config"
	"github.com/spacesedan/sentitrack/internal/artifacts"
	"github.com/spacesedan/sentitrack/internal/cache"
	"github.com/spacesedan/sentitrack/internal/clients"
	"github.com/spacesedan/sentitrack/internal/clients/kafka_client"
	"github.com/spacesedan/sentitrack/internal/db"
	"github.com/spacesedan/sentitrack/internal/sentiment"
)

type App struct {
	Config    config.Config
	Artifacts *artifacts.Artifacts
	// LoadErr is set when the artifacts could not be loaded; Pipeline is nil.
	LoadErr  error
	Pipeline *sentiment.Pipeline

	closers []func()
}

// Build loads the artifacts through cache and wires the pipeline. Sinks that
// fail to initialize are logged and left out; only an artifact failure is
// reported, through LoadErr.
func Build(ctx context.Context, cfg config.Config, cache *artifacts.Cache) *App {
	a := &App{Config: cfg}

	loaded, err := cache.Get(cfg.Artifacts.ModelPath, cfg.Artifacts.VectorizerPath)
	if err != nil {
		slog.Error("[App] Failed to load artifacts", slog.String("error", err.Error()))
		a.LoadErr = err
		return a
	}
	a.Artifacts = loaded

	opts := []sentiment.Option{
		sentiment.WithMaxChars(cfg.Pipeline.MaxReviewChars),
		sentiment.WithTopTerms(cfg.Pipeline.TopTerms),
	}
	if sc := a.scoreCache(); sc != nil {
		opts = append(opts, sentiment.WithScoreCache(sc))
	}
	if pubs := a.publishers(ctx); len(pubs) > 0 {
		async := sentiment.NewAsyncPublisher(pubs, cfg.Publish.QueueSize, cfg.Publish.Timeout)
		// Closed first, so queued events reach the sinks before they shut down.
		a.closers = append(a.closers, async.Close)
		opts = append(opts, sentiment.WithPublisher(async))
	}
	if cfg.Pipeline.VaderBaseline {
		opts = append(opts, sentiment.WithBaseline(sentiment.NewLexiconScorer()))
	}

	a.Pipeline = sentiment.FromArtifacts(loaded, opts...)
	slog.Info("[App] Pipeline ready",
		slog.String("model", loaded.ModelPath),
		slog.String("vectorizer", loaded.VectorizerPath),
		slog.String("fingerprint", loaded.Fingerprint))
	return a
}

// NewArtifactCache returns the loader cache rooted at the configured
// artifact directory.
func NewArtifactCache(cfg config.ArtifactConfig) *artifacts.Cache {
	return artifacts.NewCache(artifacts.NewFileLoader(cfg.Dir), cfg.Dir)
}

func (a *App) scoreCache() sentiment.ScoreCache {
	cfg := a.Config.Cache

	if cfg.ValkeyAddr != "" {
		client, err := clients.NewValkeyClient(cfg)
		if err == nil {
			a.closers = append(a.closers, client.Close)
			return cache.NewScoreValkey(client, cfg.TTL)
		}
		slog.Warn("[App] Valkey unavailable, using in-process score cache",
			slog.String("error", err.Error()))
	}

	if cfg.Size == 0 {
		return nil
	}
	lru, err := cache.NewScoreLRU(cfg.Size)
	if err != nil {
		slog.Warn("[App] Score cache disabled", slog.String("error", err.Error()))
		return nil
	}
	return lru
}

func (a *App) publishers(ctx context.Context) sentiment.MultiPublisher {
	var pubs sentiment.MultiPublisher

	if a.Config.Kafka.Broker != "" {
		producer, err := kafka_client.NewProducer(a.Config.Kafka)
		if err != nil {
			slog.Warn("[App] Kafka publishing disabled", slog.String("error", err.Error()))
		} else {
			a.closers = append(a.closers, producer.Close)
			pubs = append(pubs, producer)
		}
	}

	if a.Config.DynamoDB.Table != "" {
		awsCfg, err := clients.LoadAWSConfig(ctx, a.Config.DynamoDB)
		if err != nil {
			slog.Warn("[App] DynamoDB publishing disabled", slog.String("error", err.Error()))
		} else {
			client := clients.NewDynamoDBClient(awsCfg, a.Config.DynamoDB)
			pubs = append(pubs, db.NewSentimentStore(client, a.Config.DynamoDB.Table))
		}
	}

	return pubs
}

// Close releases the sink clients in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
