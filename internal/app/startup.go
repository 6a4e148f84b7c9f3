// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/server"
	"github.com/MKhiriev/go-secure-api/internal/store"
	"github.com/MKhiriev/go-secure-api/internal/workers"
)

// State is a step of the startup sequence.
type State int32

const (
	StateInit State = iota
	StateDBConnecting
	StateListening
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateDBConnecting:
		return "DB_CONNECTING"
	case StateListening:
		return "LISTENING"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Migrator is implemented by connectors able to apply schema migrations.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Startup connects the database and only then starts the HTTP server.
type Startup struct {
	connector store.Connector
	server    server.Server
	workers   *workers.Workers
	cfg       *config.StructuredConfig
	logger    *logger.Logger

	state atomic.Int32
}

func NewStartup(connector store.Connector, srv server.Server, w *workers.Workers, cfg *config.StructuredConfig, logger *logger.Logger) *Startup {
	if w == nil {
		w = workers.NewWorkers()
	}

	return &Startup{
		connector: connector,
		server:    srv,
		workers:   w,
		cfg:       cfg,
		logger:    logger,
	}
}

// State returns the current step of the sequence.
func (s *Startup) State() State {
	return State(s.state.Load())
}

// Run executes INIT -> DB_CONNECTING -> LISTENING and serves until ctx is
// cancelled.
//
// When the database connection (or the migration run) fails the sequence
// ends in FAILED: the error is logged, the server never listens and Run
// blocks until ctx is cancelled before returning the error. A failure to
// bind the listening socket is returned right away.
func (s *Startup) Run(ctx context.Context) error {
	s.setState(StateDBConnecting)

	if err := s.connector.Connect(ctx); err != nil {
		return s.fail(ctx, fmt.Errorf("connecting database: %w", err))
	}

	if s.cfg.Storage.DB.Migrate {
		if m, ok := s.connector.(Migrator); ok {
			if err := m.Migrate(ctx); err != nil {
				return s.fail(ctx, fmt.Errorf("migrating database: %w", err))
			}
			s.logger.Info().Msg("database migrations applied")
		}
	}

	if err := s.server.Listen(); err != nil {
		s.setState(StateFailed)
		s.logger.Err(err).Msg("server could not listen")
		return err
	}

	s.setState(StateListening)
	s.logger.Info().Msgf(MsgListening, s.port())

	s.workers.Run(ctx)

	return server.Run(ctx, s.server, s.cfg.Server.ShutdownTimeout, s.logger)
}

func (s *Startup) fail(ctx context.Context, err error) error {
	s.setState(StateFailed)
	s.logger.Err(err).Str("state", StateFailed.String()).Msg("startup failed, server will not listen")

	<-ctx.Done()
	return err
}

func (s *Startup) setState(state State) {
	s.state.Store(int32(state))
	s.logger.Debug().Str("state", state.String()).Msg("startup state changed")
}

// port returns the bound port, which differs from the configured one when
// the configuration asks for port 0.
func (s *Startup) port() int {
	if addr, ok := s.server.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return s.cfg.Port
}
