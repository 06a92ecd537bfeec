package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/sentitrack/config"
	"github.com/spacesedan/sentitrack/internal/models"
)

// Producer publishes sentiment events keyed by session ID, so one session's
// events stay ordered within a partition.
type Producer struct {
	producer *kafka.Producer
	topic    string

	deliveryWait time.Duration
	retryDelay   time.Duration
	flushTimeout int
}

func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker),
		slog.String("topic", cfg.Topic))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     cfg.Broker,
		"client.id":                             PRODUCER_CLIENT,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return &Producer{
		producer:     p,
		topic:        cfg.Topic,
		deliveryWait: DELIVERY_WAIT,
		retryDelay:   RETRY_DELAY,
		flushTimeout: FLUSH_TIMEOUT,
	}, nil
}

func (p *Producer) Close() {
	slog.Info("[KafkaClient] Flushing Kafka producer before shutdown...")
	if remaining := p.producer.Flush(p.flushTimeout); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}

func (p *Producer) Publish(ctx context.Context, event models.SentimentEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to marshal event: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.SessionID),
		Value:          value,
	}

	for i := 0; i < MAX_RETRIES; i++ {
		err = p.produce(ctx, msg)
		if err == nil {
			slog.Debug("[KafkaClient] Published sentiment event",
				slog.String("topic", p.topic),
				slog.String("event_id", event.EventID))
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.retryDelay):
		}
	}

	return fmt.Errorf("[KafkaClient] failed to publish after %d attempts: %w", MAX_RETRIES, err)
}

// produce waits for the delivery report of a single message.
func (p *Producer) produce(ctx context.Context, msg *kafka.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	delivery := make(chan kafka.Event, 1)
	if err := p.producer.Produce(msg, delivery); err != nil {
		return err
	}

	timer := time.NewTimer(p.deliveryWait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("no delivery report within %s", p.deliveryWait)
	case e := <-delivery:
		m, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event %v", e)
		}
		return m.TopicPartition.Error
	}
}
