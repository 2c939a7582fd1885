package localstore

import (
	"context"
	"sync"
)

// Memory хранит данные сессий в памяти процесса.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

// NewMemory создаёт пустое хранилище в памяти.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string][]byte)}
}

// Get возвращает копию значения.
func (m *Memory) Get(_ context.Context, sessionID, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[sessionID][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set сохраняет копию значения.
func (m *Memory) Set(_ context.Context, sessionID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.data[sessionID]
	if !ok {
		entries = make(map[string][]byte)
		m.data[sessionID] = entries
	}
	entries[key] = append([]byte(nil), value...)
	return nil
}

// Remove удаляет значение. Отсутствие значения ошибкой не считается.
func (m *Memory) Remove(_ context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.data[sessionID]
	if !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		delete(m.data, sessionID)
	}
	return nil
}
