package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/vendorhub/internal/apperr"
)

// MemorySessionStore keeps sessions in a process-wide map. Entries are only
// removed by Delete; expiry is enforced by the signed token.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]Session
}

var _ SessionStore = (*MemorySessionStore)(nil)

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[uuid.UUID]Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, s *Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &s, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are held.
func (m *MemorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
