// Package cooldown tracks per-entity cooldowns keyed by bucket and entity
// with lazy expiry, periodic sweeping and pluggable storage.
package cooldown

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Store is the persistence seam. Keys are "bucket:entityID" strings, values
// are expiry instants. An entry with expiry <= now is logically absent even
// while physically present; Sweep reclaims those. ttl is a hint for
// backends with native expiry.
type Store interface {
	Get(ctx context.Context, key string) (time.Time, bool, error)
	Set(ctx context.Context, key string, expiry time.Time, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteBucket(ctx context.Context, prefix string) error
	Sweep(ctx context.Context, now time.Time) (int, error)
	Clear(ctx context.Context) error
}

// MemoryStore is the default in-process Store. Not designed for
// multi-process sharing; see RedisStore for that.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.entries[key]
	return expiry, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, expiry time.Time, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = expiry
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) DeleteBucket(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	return nil
}

func (s *MemoryStore) Sweep(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, expiry := range s.entries {
		if !expiry.After(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]time.Time)
	return nil
}

// Len reports the number of physically present entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
