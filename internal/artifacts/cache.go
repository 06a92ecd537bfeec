package artifacts

import (
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

type pathPair struct {
	model      string
	vectorizer string
}

func (p pathPair) String() string {
	return p.model + "\x00" + p.vectorizer
}

// Cache memoizes successful loads per (model, vectorizer) path pair. Failed
// loads are not remembered, so a fixed file is picked up on the next call.
type Cache struct {
	loader  Loader
	baseDir string

	mu      sync.Mutex
	entries map[pathPair]*Artifacts
	group   singleflight.Group
}

func NewCache(loader Loader, baseDir string) *Cache {
	return &Cache{
		loader:  loader,
		baseDir: baseDir,
		entries: make(map[pathPair]*Artifacts),
	}
}

func (c *Cache) Get(modelPath, vectorizerPath string) (*Artifacts, error) {
	key := pathPair{
		model:      ResolvePath(c.baseDir, modelPath),
		vectorizer: ResolvePath(c.baseDir, vectorizerPath),
	}

	if a, ok := c.lookup(key); ok {
		return a, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		if a, ok := c.lookup(key); ok {
			return a, nil
		}

		a, err := c.loader.Load(key.model, key.vectorizer)
		if err != nil {
			slog.Error("[ArtifactCache] Failed to load artifacts",
				slog.String("model", key.model),
				slog.String("vectorizer", key.vectorizer),
				slog.String("error", err.Error()))
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = a
		c.mu.Unlock()
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Artifacts), nil
}

func (c *Cache) lookup(key pathPair) (*Artifacts, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.entries[key]
	return a, ok
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
