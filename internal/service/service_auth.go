// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/store"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/internal/validators"
	"github.com/MKhiriev/go-secure-api/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// validator checks the registration and login forms.
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// hashCost is the bcrypt work factor.
	hashCost int

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		hashCost:       bcrypt.DefaultCost,
		logger:         logger,
	}
}

// RegisterUser validates the registration form, hashes the password with
// bcrypt and persists a new account with the default role.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if name, email or password is empty.
//   - ErrInvalidEmail if the email cannot be parsed.
//   - ErrPasswordTooShort if the password is shorter than
//     validators.MinPasswordLength.
//   - ErrPasswordsDoNotMatch if passwordConfirm differs from password.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken, see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("invalid registration data")
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.hashCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		Role:         models.RoleUser,
		PasswordHash: string(hash),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user by email and password.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrWrongPassword if the account does not exist or the password does
//     not match its hash. Both cases share one error so the response does
//     not reveal which emails are registered.
//   - A wrapped storage error for any other repository failure.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Warn().Str("email", req.Email).Msg("invalid login data provided")
		return models.User{}, err
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Warn().Str("email", req.Email).Msg("login for unknown email")
		return models.User{}, ErrWrongPassword
	}
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Int64("id", foundUser.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
