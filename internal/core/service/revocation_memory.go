package service

import (
	"context"
	"sync"
	"time"
)

// MemoryRevocationStore keeps revoked session IDs in-process. Suitable for
// single-instance deployments and tests; use the Redis-backed store when the
// service runs behind more than one replica.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{entries: make(map[string]time.Time)}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	s.entries[jti] = time.Now().Add(ttl)
	s.mu.Unlock()
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.entries[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(s.entries, jti)
		return false, nil
	}
	return true, nil
}
