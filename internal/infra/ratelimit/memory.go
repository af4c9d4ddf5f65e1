package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryStore счётчики в памяти процесса.
// Подходит для одного экземпляра сервиса и для тестов.
type MemoryStore struct {
	mu        sync.Mutex
	windows   map[string]*window
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore создает хранилище в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (s *MemoryStore) Allow(_ context.Context, key string, limit int, period time.Duration) (bool, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now, period)

	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(period)}
		s.windows[key] = w
	}

	w.count++
	if w.count <= limit {
		return true, 0, nil
	}
	return false, w.resetAt.Sub(now), nil
}

// Len число активных окон
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

// evictExpired удаляет истёкшие окна не чаще раза за period
func (s *MemoryStore) evictExpired(now time.Time, period time.Duration) {
	if now.Sub(s.lastSweep) < period {
		return
	}
	for key, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, key)
		}
	}
	s.lastSweep = now
}
