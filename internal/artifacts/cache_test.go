package artifacts

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls atomic.Int32
	errs  []error
	gate  chan struct{}
}

func (l *countingLoader) Load(modelPath, vectorizerPath string) (*Artifacts, error) {
	n := int(l.calls.Add(1))
	if l.gate != nil {
		<-l.gate
	}
	if n <= len(l.errs) && l.errs[n-1] != nil {
		return nil, l.errs[n-1]
	}
	return &Artifacts{ModelPath: modelPath, VectorizerPath: vectorizerPath, Fingerprint: "fp"}, nil
}

func TestCache_MemoizesByPathPair(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(loader, "/srv/models")

	first, err := cache.Get("m.json", "v.json")
	require.NoError(t, err)
	second, err := cache.Get("/srv/models/m.json", "./v.json")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), loader.calls.Load())
	assert.Equal(t, "/srv/models/m.json", first.ModelPath)

	_, err = cache.Get("m.json", "other.json")
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.calls.Load())
	assert.Equal(t, 2, cache.Len())
}

func TestCache_FailuresAreNotMemoized(t *testing.T) {
	loader := &countingLoader{errs: []error{notFound(ROLE_MODEL, "m.json", errors.New("missing"))}}
	cache := NewCache(loader, "/srv/models")

	a, err := cache.Get("m.json", "v.json")
	assert.Nil(t, a)
	require.ErrorIs(t, err, ErrArtifactNotFound)
	assert.Zero(t, cache.Len())

	a, err = cache.Get("m.json", "v.json")
	require.NoError(t, err)
	require.NotNil(t, a)

	_, err = cache.Get("m.json", "v.json")
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestCache_ConcurrentFirstLoadDeserializesOnce(t *testing.T) {
	loader := &countingLoader{gate: make(chan struct{})}
	cache := NewCache(loader, "/srv/models")

	var wg sync.WaitGroup
	results := make([]*Artifacts, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := cache.Get("m.json", "v.json")
			assert.NoError(t, err)
			results[i] = a
		}(i)
	}
	close(loader.gate)
	wg.Wait()

	assert.Equal(t, int32(1), loader.calls.Load())
	for _, a := range results {
		assert.Same(t, results[0], a)
	}
}

func TestCache_FileLoaderRecoversAfterFix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tfidf_vectorizer.json", validVectorizer)
	cache := NewCache(NewFileLoader(dir), dir)

	_, err := cache.Get("sentiment_model.json", "tfidf_vectorizer.json")
	require.ErrorIs(t, err, ErrArtifactNotFound)

	writeFile(t, dir, "sentiment_model.json", validModel)

	first, err := cache.Get("sentiment_model.json", "tfidf_vectorizer.json")
	require.NoError(t, err)
	second, err := cache.Get(filepath.Join(dir, "sentiment_model.json"), "tfidf_vectorizer.json")
	require.NoError(t, err)
	assert.Same(t, first, second)
}
