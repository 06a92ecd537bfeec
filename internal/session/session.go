package session

import (
	"sync"

	"github.com/google/uuid"
)

// Session is one interactive user's state. Interactions on a session run one
// at a time through Do.
type Session struct {
	ID string

	mu      sync.Mutex
	history History
}

func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// Do runs fn with exclusive access to the session history.
func (s *Session) Do(fn func(h *History)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.history)
}
