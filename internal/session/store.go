package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store keeps isolated sessions, evicting the least recently used once full
// and any session idle longer than the TTL.
type Store struct {
	// mu makes the lookup and TTL refresh in Get atomic with Delete, so an
	// ended session is never re-inserted.
	mu       sync.Mutex
	sessions *expirable.LRU[string, *Session]
}

func NewStore(maxSessions int, ttl time.Duration) *Store {
	onEvict := func(id string, s *Session) {
		slog.Debug("[SessionStore] Session evicted", slog.String("session_id", id))
	}
	return &Store{sessions: expirable.NewLRU[string, *Session](maxSessions, onEvict, ttl)}
}

func (st *Store) Create() *Session {
	s := New()
	st.mu.Lock()
	st.sessions.Add(s.ID, s)
	st.mu.Unlock()
	slog.Info("[SessionStore] Session created", slog.String("session_id", s.ID))
	return s
}

// Get returns the session and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions.Get(id)
	if ok {
		st.sessions.Add(id, s)
	}
	return s, ok
}

func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions.Remove(id)
}

func (st *Store) Len() int {
	return st.sessions.Len()
}
