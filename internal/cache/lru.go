package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/spacesedan/sentitrack/internal/models"
)

// ScoreLRU is an in-process score cache bounded by entry count.
type ScoreLRU struct {
	entries *lru.Cache[string, models.ScoreEntry]
}

func NewScoreLRU(size int) (*ScoreLRU, error) {
	entries, err := lru.New[string, models.ScoreEntry](size)
	if err != nil {
		return nil, fmt.Errorf("[ScoreCache] failed to create LRU: %w", err)
	}
	return &ScoreLRU{entries: entries}, nil
}

func (c *ScoreLRU) Get(ctx context.Context, key string) (models.ScoreEntry, bool) {
	return c.entries.Get(key)
}

func (c *ScoreLRU) Put(ctx context.Context, key string, entry models.ScoreEntry) {
	c.entries.Add(key, entry)
}

func (c *ScoreLRU) Len() int {
	return c.entries.Len()
}
