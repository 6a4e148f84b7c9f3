// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketStore_BurstThenRefill(t *testing.T) {
	clock := newFakeClock()
	s := NewBucketStore(3, 3*time.Second)
	s.now = clock.Now
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		dec, err := s.Take(ctx, "k")
		require.NoError(t, err)
		require.True(t, dec.Allowed, "request %d", i+1)
	}

	dec, err := s.Take(ctx, "k")
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, 0, dec.Remaining)
	assert.Equal(t, time.Second, dec.RetryAfter)

	clock.Advance(time.Second)

	dec, err = s.Take(ctx, "k")
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func TestBucketStore_Sweep(t *testing.T) {
	clock := newFakeClock()
	s := NewBucketStore(1, time.Minute)
	s.now = clock.Now
	ctx := context.Background()

	_, _ = s.Take(ctx, "idle")
	clock.Advance(2 * time.Minute)
	_, _ = s.Take(ctx, "active")

	assert.Equal(t, 1, s.Sweep())
}
