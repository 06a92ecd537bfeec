package db

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/sentitrack/internal/models"
)

const RESULT_TTL = 24 * time.Hour

type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// SentimentStore writes one item per classification. Items expire after
// RESULT_TTL through the table's "ttl" attribute.
type SentimentStore struct {
	client PutItemAPI
	table  string
}

func NewSentimentStore(client PutItemAPI, table string) *SentimentStore {
	return &SentimentStore{client: client, table: table}
}

func (s *SentimentStore) Publish(ctx context.Context, event models.SentimentEvent) error {
	item, err := EventToDynamoDBItem(event)
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to store sentiment event: %w", err)
	}

	slog.Debug("[DynamoDB] Stored sentiment event",
		slog.String("table", s.table),
		slog.String("event_id", event.EventID))
	return nil
}

func EventToDynamoDBItem(event models.SentimentEvent) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(event)
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to marshal sentiment event: %w", err)
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	item["created_at"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(createdAt.Unix(), 10)}
	item["ttl"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(createdAt.Add(RESULT_TTL).Unix(), 10)}

	return item, nil
}
