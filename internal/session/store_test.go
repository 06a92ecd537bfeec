package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SessionsAreIsolated(t *testing.T) {
	store := NewStore(10, time.Minute)
	a := store.Create()
	b := store.Create()
	require.NotEqual(t, a.ID, b.ID)

	a.Do(func(h *History) { h.Append(0.9) })

	got, ok := store.Get(a.ID)
	require.True(t, ok)
	got.Do(func(h *History) { assert.Equal(t, []float64{0.9}, h.Scores()) })

	got, ok = store.Get(b.ID)
	require.True(t, ok)
	got.Do(func(h *History) { assert.Zero(t, h.Size()) })
}

func TestStore_DeleteAndUnknown(t *testing.T) {
	store := NewStore(10, time.Minute)
	s := store.Create()

	assert.True(t, store.Delete(s.ID))
	_, ok := store.Get(s.ID)
	assert.False(t, ok)
	assert.False(t, store.Delete("missing"))
}

func TestStore_EvictsOldestWhenFull(t *testing.T) {
	store := NewStore(2, time.Minute)
	first := store.Create()
	store.Create()
	store.Create()

	assert.Equal(t, 2, store.Len())
	_, ok := store.Get(first.ID)
	assert.False(t, ok)
}

func TestStore_ExpiresIdleSessions(t *testing.T) {
	store := NewStore(10, 20*time.Millisecond)
	s := store.Create()

	time.Sleep(60 * time.Millisecond)

	_, ok := store.Get(s.ID)
	assert.False(t, ok)
}

func TestStore_DeleteIsNotUndoneByConcurrentGet(t *testing.T) {
	store := NewStore(10, time.Minute)
	s := store.Create()

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 200; j++ {
				store.Get(s.ID)
			}
		}()
	}

	close(start)
	assert.True(t, store.Delete(s.ID))
	wg.Wait()

	_, ok := store.Get(s.ID)
	assert.False(t, ok)
	assert.Zero(t, store.Len())
}
