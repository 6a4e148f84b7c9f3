// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared by the HTTP layer and the
// services: typed context keys, JWT issuing and parsing, JSON response
// writing and ID generation.
package utils

import (
	"context"
	"time"

	"github.com/MKhiriev/go-secure-api/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserCtxKey holds the authenticated models.User set by the auth middleware.
	UserCtxKey = contextKey("user")

	// RequestTimeCtxKey holds the time.Time the request entered the pipeline.
	RequestTimeCtxKey = contextKey("requestTime")
)

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext returns the authenticated user stored by the auth
// middleware. ok is false when the request was not authenticated.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}

// WithRequestTime returns a copy of ctx carrying t.
func WithRequestTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, RequestTimeCtxKey, t)
}

// GetRequestTimeFromContext returns the request time annotation.
func GetRequestTimeFromContext(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(RequestTimeCtxKey).(time.Time)
	return t, ok
}
