package kafka_client

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentitrack/config"
	"github.com/spacesedan/sentitrack/internal/models"
)

const TEST_TOPIC = "sentiment_events_test"

func newTestProducer(t *testing.T, cluster *kafka.MockCluster) *Producer {
	t.Helper()
	p, err := NewProducer(config.KafkaConfig{Broker: cluster.BootstrapServers(), Topic: TEST_TOPIC})
	require.NoError(t, err)
	p.deliveryWait = 2 * time.Second
	p.retryDelay = 10 * time.Millisecond
	p.flushTimeout = 100
	return p
}

func TestProducer_PublishDeliversKeyedEvent(t *testing.T) {
	cluster, err := kafka.NewMockCluster(1)
	require.NoError(t, err)
	defer cluster.Close()

	p := newTestProducer(t, cluster)
	defer p.Close()

	event := models.SentimentEvent{EventID: "evt-1", SessionID: "sess-1", Score: 0.8, Label: models.LabelPositive}
	require.NoError(t, p.Publish(context.Background(), event))

	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": cluster.BootstrapServers(),
		"group.id":          "producer-test",
		"auto.offset.reset": "earliest",
	})
	require.NoError(t, err)
	defer consumer.Close()
	require.NoError(t, consumer.SubscribeTopics([]string{TEST_TOPIC}, nil))

	msg, err := consumer.ReadMessage(15 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", string(msg.Key))

	var got models.SentimentEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "evt-1", got.EventID)
	assert.Equal(t, models.LabelPositive, got.Label)
}

func TestProducer_PublishGivesUpWithoutDeliveryReport(t *testing.T) {
	cluster, err := kafka.NewMockCluster(1)
	require.NoError(t, err)

	p := newTestProducer(t, cluster)
	defer p.Close()
	p.deliveryWait = 100 * time.Millisecond

	cluster.Close()

	err = p.Publish(context.Background(), models.SentimentEvent{EventID: "evt-2", SessionID: "sess-2"})
	require.Error(t, err)
}

func TestProducer_PublishStopsOnCancelledContext(t *testing.T) {
	cluster, err := kafka.NewMockCluster(1)
	require.NoError(t, err)
	defer cluster.Close()

	p := newTestProducer(t, cluster)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = p.Publish(ctx, models.SentimentEvent{EventID: "evt-3", SessionID: "sess-3"})
	assert.ErrorIs(t, err, context.Canceled)
}
