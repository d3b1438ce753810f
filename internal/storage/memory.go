package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps documents in process memory. It is the default backend
// and the one unit tests run against; its semantics mirror browser local
// storage (string key, serialized value, gone when the process exits).
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string, out any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode value for %q: %w", key, err)
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}

	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}
