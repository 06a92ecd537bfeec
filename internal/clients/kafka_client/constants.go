package kafka_client

import "time"

const (
	MAX_RETRIES     = 3
	RETRY_DELAY     = 500 * time.Millisecond
	FLUSH_TIMEOUT   = 5000 // ms
	DELIVERY_WAIT   = 10 * time.Second
	PRODUCER_CLIENT = "sentitrack-producer"
)
