package session

import (
	"context"
	"sync"
)

// MemoryStorage keeps the token in process memory only. Used in tests and
// when running with an ephemeral session.
type MemoryStorage struct {
	mu    sync.Mutex
	token string
	set   bool
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Read(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", nil
	}
	return m.token, nil
}

func (m *MemoryStorage) Write(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}
