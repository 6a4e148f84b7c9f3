// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/logger"
)

// Janitor periodically calls a sweep function, for example to evict expired
// rate-limit windows from process memory.
type Janitor struct {
	name   string
	every  time.Duration
	sweep  func() int
	logger *logger.Logger

	done chan struct{}
}

// NewJanitor returns a Janitor calling sweep every period. A non-positive
// period disables the worker.
func NewJanitor(name string, every time.Duration, sweep func() int, log *logger.Logger) *Janitor {
	return &Janitor{
		name:   name,
		every:  every,
		sweep:  sweep,
		logger: log,
		done:   make(chan struct{}),
	}
}

// Run starts the sweeping goroutine. It stops when ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	if j.every <= 0 {
		close(j.done)
		return
	}

	ticker := time.NewTicker(j.every)
	go func() {
		defer close(j.done)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				j.logger.Debug().Str("worker", j.name).Msg("janitor stopped")
				return
			case <-ticker.C:
				if evicted := j.sweep(); evicted > 0 {
					j.logger.Debug().Str("worker", j.name).Int("evicted", evicted).Msg("janitor sweep")
				}
			}
		}
	}()
}

// Done is closed once the janitor goroutine has exited.
func (j *Janitor) Done() <-chan struct{} {
	return j.done
}
