// Package memory is an in-process Storage used when no external backend is
// configured and in tests.
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"tripwise/internal/adapters/observability"
)

type entry struct {
	val     []byte
	expires time.Time // zero = never
}

type Storage struct {
	mu  sync.Mutex
	m   map[string]entry
	now func() time.Time
}

func New() *Storage { return &Storage{m: map[string]entry{}, now: time.Now} }

// WithClock replaces the time source, for expiry tests.
func (s *Storage) WithClock(now func() time.Time) *Storage {
	s.now = now
	return s
}

func (s *Storage) lookup(key string) ([]byte, bool) {
	e, ok := s.m[key]
	if !ok {
		return nil, false
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.m, key)
		return nil, false
	}
	return e.val, true
}

func (s *Storage) Get(ctx context.Context, key string, dst any) (bool, error) {
	s.mu.Lock()
	v, ok := s.lookup(key)
	s.mu.Unlock()
	if !ok {
		observability.ObserveStorage("memory", "miss")
		return false, nil
	}
	observability.ObserveStorage("memory", "hit")
	return true, json.Unmarshal(v, dst)
}

func (s *Storage) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	e := entry{val: b}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.m[key] = e
	s.mu.Unlock()
	observability.ObserveStorage("memory", "set")
	return nil
}

func (s *Storage) Take(ctx context.Context, key string, dst any) (bool, error) {
	s.mu.Lock()
	v, ok := s.lookup(key)
	delete(s.m, key)
	s.mu.Unlock()
	if !ok {
		observability.ObserveStorage("memory", "miss")
		return false, nil
	}
	observability.ObserveStorage("memory", "take")
	return true, json.Unmarshal(v, dst)
}

func (s *Storage) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	observability.ObserveStorage("memory", "del")
	return nil
}

// PurgeExpired drops entries whose TTL has elapsed.
func (s *Storage) PurgeExpired(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	now := s.now()
	for k, e := range s.m {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(s.m, k)
			n++
		}
	}
	return n, nil
}

// SetRaw stores b verbatim, bypassing JSON encoding.
func (s *Storage) SetRaw(key string, b []byte) {
	s.mu.Lock()
	s.m[key] = entry{val: append([]byte(nil), b...)}
	s.mu.Unlock()
}
