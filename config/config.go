package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DEFAULT_MODEL_FILE      = "sentiment_model.json"
	DEFAULT_VECTORIZER_FILE = "tfidf_vectorizer.json"
	DEFAULT_EVENTS_TOPIC    = "review_sentiment_events"
)

type ArtifactConfig struct {
	Dir            string
	ModelPath      string
	VectorizerPath string
}

type PipelineConfig struct {
	MaxReviewChars int
	TopTerms       int
	VaderBaseline  bool
}

type ServerConfig struct {
	Addr        string
	MaxSessions int
	SessionTTL  time.Duration
}

type CacheConfig struct {
	Size           int
	TTL            time.Duration
	ValkeyAddr     string
	ValkeyPassword string
	ValkeyTLS      bool
}

// PublishConfig bounds the background delivery of result events.
type PublishConfig struct {
	QueueSize int
	Timeout   time.Duration
}

type KafkaConfig struct {
	Broker string
	Topic  string
}

type DynamoDBConfig struct {
	Table    string
	Region   string
	Endpoint string
}

type Config struct {
	Env       string
	LogLevel  string
	Artifacts ArtifactConfig
	Pipeline  PipelineConfig
	Server    ServerConfig
	Cache     CacheConfig
	Publish   PublishConfig
	Kafka     KafkaConfig
	DynamoDB  DynamoDBConfig
}

// Load reads the configuration from the environment. Call LoadEnv first when
// an env file should be merged in.
func Load() Config {
	return Config{
		Env:      getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Artifacts: ArtifactConfig{
			Dir:            getEnv("ARTIFACT_DIR", "."),
			ModelPath:      getEnv("MODEL_PATH", DEFAULT_MODEL_FILE),
			VectorizerPath: getEnv("VECTORIZER_PATH", DEFAULT_VECTORIZER_FILE),
		},
		Pipeline: PipelineConfig{
			MaxReviewChars: getEnvInt("MAX_REVIEW_CHARS", 5000),
			TopTerms:       getEnvInt("TOP_TERMS", 8),
			VaderBaseline:  getEnvBool("VADER_BASELINE", false),
		},
		Server: ServerConfig{
			Addr:        getEnv("HTTP_ADDR", ":8080"),
			MaxSessions: getEnvInt("MAX_SESSIONS", 1024),
			SessionTTL:  getEnvDuration("SESSION_TTL", 30*time.Minute),
		},
		Cache: CacheConfig{
			Size:           getEnvInt("SCORE_CACHE_SIZE", 512),
			TTL:            getEnvDuration("SCORE_CACHE_TTL", 24*time.Hour),
			ValkeyAddr:     getEnv("VALKEY_INIT_ADDRESS", ""),
			ValkeyPassword: getEnv("VALKEY_PASSWORD", ""),
			ValkeyTLS:      getEnvBool("VALKEY_TLS", false),
		},
		Publish: PublishConfig{
			QueueSize: getEnvInt("PUBLISH_QUEUE_SIZE", 256),
			Timeout:   getEnvDuration("PUBLISH_TIMEOUT", 5*time.Second),
		},
		Kafka: KafkaConfig{
			Broker: getEnv("KAFKA_BROKER", ""),
			Topic:  getEnv("KAFKA_TOPIC_SENTIMENT_EVENTS", DEFAULT_EVENTS_TOPIC),
		},
		DynamoDB: DynamoDBConfig{
			Table:    getEnv("DYNAMODB_TABLE", ""),
			Region:   getEnv("AWS_REGION", "us-west-2"),
			Endpoint: getEnv("AWS_ENDPOINT", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		slog.Warn("[Config] Invalid integer, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Int("default", defaultValue))
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("[Config] Invalid boolean, using default",
			slog.String("key", key),
			slog.String("value", raw))
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		slog.Warn("[Config] Invalid duration, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Duration("default", defaultValue))
		return defaultValue
	}
	return value
}
