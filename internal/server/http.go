// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/logger"
)

type httpServer struct {
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

// NewServer returns an HTTP server for handler bound to the configured
// address once Listen is called.
func NewServer(handler http.Handler, cfg *config.StructuredConfig, logger *logger.Logger) (Server, error) {
	if handler == nil {
		return nil, ErrNoHandler
	}

	logger.Info().Str("address", cfg.Address()).Msg("creating new server...")

	return &httpServer{
		server: &http.Server{
			Addr:              cfg.Address(),
			Handler:           handler,
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			ErrorLog:          newErrorLog(logger),
		},
		logger: logger,
	}, nil
}

func (h *httpServer) Listen() error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("HTTP server Listen: %w", err)
	}

	h.listener = ln
	return nil
}

func (h *httpServer) Serve() error {
	if h.listener == nil {
		return ErrNotListened
	}

	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server Serve: %w", err)
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	h.logger.Info().Msg("HTTP server Shutdown")

	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}
	return nil
}

func (h *httpServer) Addr() net.Addr {
	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}
