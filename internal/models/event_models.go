package models

import "time"

// SentimentEvent is emitted after every successful classification.
type SentimentEvent struct {
	EventID     string           `json:"event_id" dynamodbav:"event_id"`
	SessionID   string           `json:"session_id" dynamodbav:"session_id"`
	Fingerprint string           `json:"artifact_fingerprint" dynamodbav:"artifact_fingerprint"`
	ReviewChars int              `json:"review_chars" dynamodbav:"review_chars"`
	Score       float64          `json:"score" dynamodbav:"score"`
	Label       Label            `json:"label" dynamodbav:"label"`
	Bucket      ConfidenceBucket `json:"bucket" dynamodbav:"bucket"`
	Cached      bool             `json:"cached" dynamodbav:"cached"`
	CreatedAt   time.Time        `json:"created_at" dynamodbav:"-"`
}
