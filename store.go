package genaistudio

import "sync"

// SessionStore keeps track of live sessions. Implementations must be safe
// for concurrent use by HTTP handlers.
type SessionStore interface {
	Get(id string) (*Session, error)
	Put(s *Session)
	Delete(id string)
	Len() int
}

var _ SessionStore = &MemoryStore{}

// MemoryStore is the process-lifetime session registry. Sessions are not
// persisted anywhere; a restart starts every conversation over.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Get looks up a session by ID, returning ErrSessionNotFound when the ID
// is unknown.
func (m *MemoryStore) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *MemoryStore) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
}

func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
