// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	ErrNoHandler   = errors.New("no handler is given")
	ErrNotListened = errors.New("server is not listening")
)
