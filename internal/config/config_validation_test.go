// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "defaults are valid", mutate: func(*StructuredConfig) {}},
		{name: "port zero", mutate: func(c *StructuredConfig) { c.Port = 0 }, wantErr: ErrInvalidPort},
		{name: "port too large", mutate: func(c *StructuredConfig) { c.Port = 70000 }, wantErr: ErrInvalidPort},
		{name: "unknown mode", mutate: func(c *StructuredConfig) { c.Mode = "staging" }, wantErr: ErrInvalidMode},
		{name: "zero max", mutate: func(c *StructuredConfig) { c.Security.RateLimit.Max = 0 }, wantErr: ErrInvalidRateLimit},
		{name: "zero window", mutate: func(c *StructuredConfig) { c.Security.RateLimit.Window = 0 }, wantErr: ErrInvalidRateLimit},
		{name: "unknown store", mutate: func(c *StructuredConfig) { c.Security.RateLimit.Store = "etcd" }, wantErr: ErrInvalidRateLimit},
		{name: "redis without address", mutate: func(c *StructuredConfig) { c.Security.RateLimit.Store = RateLimitStoreRedis }, wantErr: ErrInvalidRateLimit},
		{
			name: "redis with address",
			mutate: func(c *StructuredConfig) {
				c.Security.RateLimit.Store = RateLimitStoreRedis
				c.Security.RateLimit.RedisAddr = "localhost:6379"
			},
		},
		{name: "zero body limit", mutate: func(c *StructuredConfig) { c.Security.BodyLimit = 0 }, wantErr: ErrInvalidBodyLimit},
		{name: "negative timeout", mutate: func(c *StructuredConfig) { c.Server.ReadTimeout = -1 }, wantErr: ErrInvalidServerConfigs},
		{name: "negative token duration", mutate: func(c *StructuredConfig) { c.App.TokenDuration = -1 }, wantErr: ErrInvalidAppConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	cfg := defaultConfig()
	cfg.Port = 0
	cfg.Mode = ""

	err := cfg.validate()
	assert.ErrorIs(t, err, ErrInvalidPort)
	assert.ErrorIs(t, err, ErrInvalidMode)
}
