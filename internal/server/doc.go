// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server wires and runs the application's HTTP server.
//
// Binding the listening socket ([Server.Listen]) is separated from serving
// ([Server.Serve]) so that callers can report a successful bind before the
// server blocks. [Run] serves until its context is cancelled and then shuts
// the server down gracefully.
package server
