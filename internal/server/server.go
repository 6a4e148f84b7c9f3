// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"log"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/logger"
)

// Run serves s, which must already be listening, until ctx is cancelled or
// serving fails. On cancellation the server is shut down, waiting at most
// shutdownTimeout for active requests.
func Run(ctx context.Context, s Server, shutdownTimeout time.Duration, logger *logger.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.Serve()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Err(err).Msg("server did not shut down gracefully")
		return err
	}

	if err := <-serveErr; err != nil {
		return err
	}

	logger.Info().Msg("server Shutdown gracefully")
	return nil
}

// newErrorLog routes net/http's internal errors (TLS handshakes, broken
// connections) through the application logger.
func newErrorLog(l *logger.Logger) *log.Logger {
	return log.New(l.With().Str("component", "net/http").Logger(), "", 0)
}
