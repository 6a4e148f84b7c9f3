// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// BucketStore is a token-bucket limiter per key built on x/time/rate. A
// bucket holds limit tokens and refills at limit tokens per window, so bursts
// up to limit are admitted and the long-run rate matches the fixed-window
// stores. Buckets idle for longer than one window are evicted by Sweep.
type BucketStore struct {
	mu      sync.Mutex
	entries map[string]*bucketEntry
	limit   int
	every   rate.Limit
	idleTTL time.Duration
	now     func() time.Time
}

type bucketEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewBucketStore(limit int, length time.Duration) *BucketStore {
	return &BucketStore{
		entries: make(map[string]*bucketEntry),
		limit:   limit,
		every:   rate.Every(length / time.Duration(max(limit, 1))),
		idleTTL: length,
		now:     time.Now,
	}
}

// Take implements [Store]. It never returns an error.
func (s *BucketStore) Take(_ context.Context, key string) (Decision, error) {
	now := s.now()
	lim := s.limiter(key, now)

	dec := Decision{Limit: s.limit}

	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		dec.RetryAfter = delay
	} else {
		dec.Allowed = true
	}

	tokens := lim.TokensAt(now)
	dec.Remaining = max(int(math.Floor(tokens)), 0)
	missing := float64(s.limit) - tokens
	dec.ResetAt = now.Add(time.Duration(missing / float64(s.every) * float64(time.Second)))

	return dec, nil
}

func (s *BucketStore) limiter(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(s.every, s.limit)
	s.entries[key] = &bucketEntry{lim: lim, lastSeen: now}
	return lim
}

// Sweep implements [Sweeper].
func (s *BucketStore) Sweep() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, key)
			evicted++
		}
	}
	return evicted
}
