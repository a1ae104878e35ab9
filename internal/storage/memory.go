package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps encoded values in a map. Values are encoded exactly as
// the SQLite backend encodes them so decoding paths are shared.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	saves  int
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, decodeEnvelope(key, raw, dst)
}

func (s *MemoryStore) Save(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := encodeEnvelope(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	s.saves++
	return nil
}

// PutRaw stores raw bytes under key without encoding.
func (s *MemoryStore) PutRaw(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), raw...)
}

// Raw returns the stored bytes for key.
func (s *MemoryStore) Raw(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.values[key]
	return append([]byte(nil), raw...), ok
}

// Saves returns how many Save calls succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func (s *MemoryStore) Close() error { return nil }
