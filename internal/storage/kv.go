package storage

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrKeyNotFound = errors.New("key not found")
)

// KV is a durable key-value store used for cart and wishlist persistence.
// Values are opaque bytes; callers serialize their own state.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// InMemoryKV is a simple in-memory implementation useful for tests and
// local scenarios.
type InMemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewInMemoryKV() *InMemoryKV {
	return &InMemoryKV{data: make(map[string][]byte)}
}

func (s *InMemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *InMemoryKV) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

func (s *InMemoryKV) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
