package service

import (
	"sync"

	"github.com/layer-3/blackjack/core"
)

// session is the in-memory state of one player. Its mutex is held for the
// whole of a transition, store writes included.
type session struct {
	mu    sync.Mutex
	round *core.Round
	score int
}

// sessionTable maps canonical addresses to sessions
type sessionTable struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionTable() *sessionTable {
	return &sessionTable{sessions: make(map[string]*session)}
}

// acquire returns the locked session for address, creating it if needed.
// The caller must unlock it.
func (t *sessionTable) acquire(address string) *session {
	t.mu.Lock()
	s, ok := t.sessions[address]
	if !ok {
		s = &session{}
		t.sessions[address] = s
	}
	t.mu.Unlock()

	s.mu.Lock()
	return s
}

func (t *sessionTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
