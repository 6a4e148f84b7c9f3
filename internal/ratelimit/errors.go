// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import "errors"

var (
	// ErrUnknownStore is returned by [NewStore] for an unknown store kind.
	ErrUnknownStore = errors.New("unknown rate-limit store")

	// ErrRedisUnavailable wraps failures talking to Redis.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
