// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisStore_AllowsUpToLimitThenRejects(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewRedisStore(client, 3, time.Hour)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		dec, err := s.Take(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.True(t, dec.Allowed)
		assert.Equal(t, 3-i, dec.Remaining)
	}

	dec, err := s.Take(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, 3, dec.Limit)
	assert.Positive(t, dec.RetryAfter)
	assert.LessOrEqual(t, dec.RetryAfter, time.Hour)
}

func TestRedisStore_SetsWindowTTLOnFirstHit(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewRedisStore(client, 10, time.Minute)

	_, err := s.Take(context.Background(), "k")
	require.NoError(t, err)

	assert.Equal(t, time.Minute, mr.TTL(redisKeyPrefix+"k"))
	got, err := mr.Get(redisKeyPrefix + "k")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestRedisStore_WindowExpires(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewRedisStore(client, 1, time.Minute)
	ctx := context.Background()

	dec, err := s.Take(ctx, "k")
	require.NoError(t, err)
	assert.True(t, dec.Allowed)

	dec, err = s.Take(ctx, "k")
	require.NoError(t, err)
	assert.False(t, dec.Allowed)

	mr.FastForward(time.Minute + time.Second)

	dec, err = s.Take(ctx, "k")
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewRedisStore(client, 1, time.Minute)
	mr.Close()

	_, err := s.Take(context.Background(), "k")
	assert.ErrorIs(t, err, ErrRedisUnavailable)
}
