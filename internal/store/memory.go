package store

import (
	"context"
	"sync"
)

// memoryStore keeps documents in a map. Used by tests and --store memory.
type memoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[string][]byte)}
}

// Load implements Store.
func (s *memoryStore) Load(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.docs == nil {
		return nil, ErrClosed
	}
	data, exists := s.docs[key]
	if !exists {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// Save implements Store.
func (s *memoryStore) Save(_ context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.docs == nil {
		return ErrClosed
	}
	s.docs[key] = append([]byte(nil), data...)
	return nil
}

// Delete implements Store.
func (s *memoryStore) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, key)
	return nil
}

// Close implements Store.
func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = nil
	return nil
}
