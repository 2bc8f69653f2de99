package storage

import (
	"fmt"
	"sync"
)

// MemoryStore keeps blobs in process memory. It backs --ephemeral sessions
// and tests; FailWrites makes every Set fail with the given error.
type MemoryStore struct {
	mu         sync.Mutex
	blobs      map[string][]byte
	FailWrites error
	Writes     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrBlobNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.blobs[key] = append([]byte(nil), value...)
	s.Writes++
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return ":memory:"
}
