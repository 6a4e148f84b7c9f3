// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"slices"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. Every violated rule is
// reported; the returned error matches each corresponding sentinel with
// errors.Is.
//
// An empty DSN and an empty token sign key are accepted: the former makes the
// startup sequence fail in a logged, observable way, the latter is rejected
// by the authentication service when it is constructed.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Port))
	}

	if !slices.Contains([]string{ModeDevelopment, ModeProduction, ModeTest}, cfg.Mode) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidMode, cfg.Mode))
	}

	if cfg.App.TokenDuration < 0 {
		errs = append(errs, fmt.Errorf("%w: negative token duration", ErrInvalidAppConfigs))
	}

	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: negative timeout", ErrInvalidServerConfigs))
	}

	if err := cfg.Security.RateLimit.validate(); err != nil {
		errs = append(errs, err)
	}

	if cfg.Security.BodyLimit <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidBodyLimit, cfg.Security.BodyLimit))
	}

	return errors.Join(errs...)
}

func (rl RateLimit) validate() error {
	switch {
	case rl.Max <= 0:
		return fmt.Errorf("%w: max must be positive", ErrInvalidRateLimit)
	case rl.Window <= 0:
		return fmt.Errorf("%w: window must be positive", ErrInvalidRateLimit)
	}

	switch rl.Store {
	case RateLimitStoreMemory, RateLimitStoreBucket:
		return nil
	case RateLimitStoreRedis:
		if rl.RedisAddr == "" {
			return fmt.Errorf("%w: redis store requires an address", ErrInvalidRateLimit)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidRateLimit, rl.Store)
	}
}
