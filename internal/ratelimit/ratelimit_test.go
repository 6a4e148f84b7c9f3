// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyFunc(t *testing.T) {
	tests := []struct {
		name       string
		trustXFF   bool
		remoteAddr string
		xff        string
		want       string
	}{
		{name: "remote addr host", remoteAddr: "10.0.0.1:5555", want: "10.0.0.1"},
		{name: "xff ignored when not trusted", remoteAddr: "10.0.0.1:5555", xff: "203.0.113.7", want: "10.0.0.1"},
		{name: "first xff entry when trusted", trustXFF: true, remoteAddr: "10.0.0.1:5555", xff: " 203.0.113.7 , 10.0.0.2", want: "203.0.113.7"},
		{name: "empty xff falls back", trustXFF: true, remoteAddr: "10.0.0.1:5555", want: "10.0.0.1"},
		{name: "remote addr without port", remoteAddr: "10.0.0.9", want: "10.0.0.9"},
		{name: "nothing known", want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}

			assert.Equal(t, tt.want, DefaultKeyFunc(tt.trustXFF)(r))
		})
	}
}

func TestNewStore(t *testing.T) {
	base := config.RateLimit{Max: 10, Window: time.Minute}

	tests := []struct {
		name    string
		store   string
		check   func(t *testing.T, s Store)
		wantErr error
	}{
		{name: "memory", store: config.RateLimitStoreMemory, check: func(t *testing.T, s Store) { assert.IsType(t, &MemoryStore{}, s) }},
		{name: "bucket", store: config.RateLimitStoreBucket, check: func(t *testing.T, s Store) { assert.IsType(t, &BucketStore{}, s) }},
		{name: "redis", store: config.RateLimitStoreRedis, check: func(t *testing.T, s Store) { assert.IsType(t, &RedisStore{}, s) }},
		{name: "unknown", store: "etcd", wantErr: ErrUnknownStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Store = tt.store
			cfg.RedisAddr = "localhost:6379"

			s, err := NewStore(cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}
