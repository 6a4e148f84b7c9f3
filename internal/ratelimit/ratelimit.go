// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit counts requests per client key and decides whether a
// request fits in the client's quota.
//
// Three [Store] implementations are provided: [MemoryStore] (fixed window,
// single process), [RedisStore] (fixed window shared by every instance using
// the same Redis) and [BucketStore] (token bucket, single process).
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of counting one request.
type Decision struct {
	// Allowed reports whether the request fits in the quota.
	Allowed bool

	// Limit is the quota of the window.
	Limit int

	// Remaining is the number of requests still allowed in the window.
	Remaining int

	// ResetAt is the moment the quota is fully restored.
	ResetAt time.Time

	// RetryAfter is how long a rejected client should wait. Zero when
	// Allowed is true.
	RetryAfter time.Duration
}

// Store counts a request for key and returns the decision.
type Store interface {
	Take(ctx context.Context, key string) (Decision, error)
}

// Sweeper is implemented by stores that keep per-key state in process
// memory. Sweep evicts expired state and returns the number of evicted keys.
type Sweeper interface {
	Sweep() int
}

// KeyFunc extracts the client key of a request.
type KeyFunc func(r *http.Request) string

// DefaultKeyFunc keys requests by client IP: the first X-Forwarded-For entry
// when trustXFF is set, otherwise the host part of RemoteAddr.
func DefaultKeyFunc(trustXFF bool) KeyFunc {
	return func(r *http.Request) string {
		if trustXFF {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return ip
				}
			}
		}

		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
}

// NewStore builds the store selected by cfg.Store.
func NewStore(cfg config.RateLimit) (Store, error) {
	switch cfg.Store {
	case config.RateLimitStoreMemory, "":
		return NewMemoryStore(cfg.Max, cfg.Window), nil
	case config.RateLimitStoreBucket:
		return NewBucketStore(cfg.Max, cfg.Window), nil
	case config.RateLimitStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedisStore(client, cfg.Max, cfg.Window), nil
	default:
		return nil, ErrUnknownStore
	}
}

func remaining(limit int, used int) int {
	return max(limit-used, 0)
}
