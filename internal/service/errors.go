// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-secure-api/internal/validators"
)

// Validation errors are re-exported so that callers depend on the service
// package only.
var (
	ErrInvalidDataProvided = validators.ErrInvalidDataProvided
	ErrInvalidEmail        = validators.ErrInvalidEmail
	ErrPasswordTooShort    = validators.ErrPasswordTooShort
	ErrPasswordsDoNotMatch = validators.ErrPasswordsDoNotMatch
)

var (
	ErrWrongPassword   = errors.New("wrong password")
	ErrHashingPassword = errors.New("password hashing failed")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
