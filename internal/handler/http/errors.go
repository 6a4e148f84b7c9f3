// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the authentication middleware. Callers can match
// against them with [errors.Is].
var (
	// ErrNoToken is returned when neither the "Authorization" header nor the
	// jwt cookie carries a token.
	ErrNoToken = errors.New("no token in request")

	// ErrUserNoLongerExists is returned when the token subject does not
	// match any account.
	ErrUserNoLongerExists = errors.New("user belonging to token no longer exists")

	// ErrNoPermission is returned when the authenticated user's role is not
	// allowed on the route.
	ErrNoPermission = errors.New("no permission")

	ErrInvalidUserID = errors.New("invalid user ID")
)
