// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net"
)

// Server defines the lifecycle contract of the HTTP server.
type Server interface {
	// Listen binds the listening socket. It does not accept connections.
	Listen() error

	// Serve accepts connections on the socket bound by Listen and blocks
	// until the server is shut down.
	Serve() error

	// Shutdown gracefully stops the server, waiting for active requests
	// until ctx is done.
	Shutdown(ctx context.Context) error

	// Addr returns the bound address, or nil before Listen.
	Addr() net.Addr
}
