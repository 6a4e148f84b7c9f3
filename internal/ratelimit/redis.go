// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisStore is a fixed-window counter kept in Redis, so every instance of
// the server shares the same quota. The counter is incremented with INCR and
// the window length is attached as the key's TTL on its first hit.
type RedisStore struct {
	client redis.Cmdable
	limit  int
	length time.Duration
	now    func() time.Time
}

func NewRedisStore(client redis.Cmdable, limit int, length time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		limit:  limit,
		length: length,
		now:    time.Now,
	}
}

// Take implements [Store]. Errors wrap [ErrRedisUnavailable].
func (s *RedisStore) Take(ctx context.Context, key string) (Decision, error) {
	redisKey := redisKeyPrefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	count := int(incr.Val())
	ttl := pttl.Val()

	// A key without TTL belongs to a window opened by this request.
	if ttl <= 0 {
		if err := s.client.PExpire(ctx, redisKey, s.length).Err(); err != nil {
			return Decision{}, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
		}
		ttl = s.length
	}

	resetAt := s.now().Add(ttl)
	dec := Decision{
		Allowed:   count <= s.limit,
		Limit:     s.limit,
		Remaining: remaining(s.limit, count),
		ResetAt:   resetAt,
	}
	if !dec.Allowed {
		dec.RetryAfter = ttl
	}

	return dec, nil
}
