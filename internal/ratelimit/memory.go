// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a fixed-window counter kept in process memory. The first
// request of a key opens a window of the configured length; the window
// admits limit requests and is replaced by a fresh one once it expires.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	length  time.Duration
	now     func() time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

func NewMemoryStore(limit int, length time.Duration) *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
		limit:   limit,
		length:  length,
		now:     time.Now,
	}
}

// Take implements [Store]. It never returns an error.
func (s *MemoryStore) Take(_ context.Context, key string) (Decision, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(s.length)}
		s.windows[key] = w
	}
	w.count++

	dec := Decision{
		Allowed:   w.count <= s.limit,
		Limit:     s.limit,
		Remaining: remaining(s.limit, w.count),
		ResetAt:   w.resetAt,
	}
	if !dec.Allowed {
		dec.RetryAfter = w.resetAt.Sub(now)
	}

	return dec, nil
}

// Sweep implements [Sweeper].
func (s *MemoryStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
