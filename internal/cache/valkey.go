package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/sentitrack/internal/clients"
	"github.com/spacesedan/sentitrack/internal/models"
)

const VALKEY_SCORE_PREFIX = "sentitrack:score:"

// ScoreValkey shares scored reviews between dashboard replicas. Any Valkey
// failure degrades to a cache miss.
type ScoreValkey struct {
	client *clients.ValkeyClient
	ttl    time.Duration
}

func NewScoreValkey(client *clients.ValkeyClient, ttl time.Duration) *ScoreValkey {
	return &ScoreValkey{client: client, ttl: ttl}
}

func scoreKey(key string) string {
	return VALKEY_SCORE_PREFIX + key
}

func (c *ScoreValkey) Get(ctx context.Context, key string) (models.ScoreEntry, bool) {
	var entry models.ScoreEntry

	res := c.client.DoWithRetry(ctx, c.client.B().Get().Key(scoreKey(key)).Build(), clients.MAX_RETRIES)
	raw, err := res.AsBytes()
	if err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ScoreCache] Valkey lookup failed",
				slog.String("error", err.Error()))
		}
		return entry, false
	}

	if err := json.Unmarshal(raw, &entry); err != nil {
		slog.Warn("[ScoreCache] Dropping undecodable cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return entry, false
	}
	return entry, true
}

func (c *ScoreValkey) Put(ctx context.Context, key string, entry models.ScoreEntry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		slog.Warn("[ScoreCache] Failed to encode entry", slog.String("error", err.Error()))
		return
	}

	cmd := c.client.B().Set().Key(scoreKey(key)).Value(string(raw)).ExSeconds(max(1, int64(c.ttl.Seconds()))).Build()
	if err := c.client.DoWithRetry(ctx, cmd, clients.MAX_RETRIES).Error(); err != nil {
		slog.Warn("[ScoreCache] Valkey store failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}
