// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/store"
	"github.com/MKhiriev/go-secure-api/models"
)

type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// GetUser returns the account with the given ID or a wrapped
// store.ErrNoUserWasFound.
func (u *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	if userID <= 0 {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := u.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return users, nil
}
