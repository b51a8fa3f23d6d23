package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session — данные входа, привязанные к непрозрачному токену.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired сообщает, истекла ли сессия к моменту now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store — хранилище сессий, передаётся в хендлеры явно.
type Store interface {
	Create(username string) (Session, error)
	Get(token string) (Session, bool)
	Delete(token string)
	// Cleanup удаляет истёкшие сессии и возвращает их количество.
	Cleanup(now time.Time) int
}

// MemoryStore хранит сессии в памяти процесса.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]Session
}

// NewMemoryStore создаёт хранилище; каждая сессия живёт ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]Session),
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Create(username string) (Session, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return Session{}, err
	}
	now := m.now()
	s := Session{
		Token:     token.String(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s, nil
}

func (m *MemoryStore) Get(token string) (Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok || s.Expired(m.now()) {
		return Session{}, false
	}
	return s, true
}

func (m *MemoryStore) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

func (m *MemoryStore) Cleanup(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, token)
			removed++
		}
	}
	return removed
}

// Len возвращает число хранимых сессий, включая ещё не вычищенные истёкшие.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
