// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-secure-api/models"
)

// AuthService backs the /api/v1/auth route group and the auth middleware.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService backs the /api/v1/user route group.
type UserService interface {
	GetUser(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}
