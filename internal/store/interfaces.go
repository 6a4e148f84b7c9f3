// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-secure-api/models"
)

// Connector establishes the database connection. Connect is awaited once at
// startup before the HTTP server starts listening.
type Connector interface {
	Connect(ctx context.Context) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// ErrorClassificator inspects driver errors of one database dialect.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may succeed if retried.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err is a unique constraint violation.
	IsUniqueViolation(err error) bool
}
