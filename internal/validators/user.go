// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-secure-api/models"
)

// Field name constants used to specify which fields should be validated.
const (
	// FieldName targets the display name of a registration form.
	FieldName = "name"

	// FieldEmail targets the email address. On a registration form the
	// address must also parse as an RFC 5322 address.
	FieldEmail = "email"

	// FieldPassword targets the password. On a registration form it must be
	// at least MinPasswordLength bytes long.
	FieldPassword = "password"

	// FieldPasswordConfirm targets the password confirmation, which must
	// equal the password.
	FieldPasswordConfirm = "password_confirm"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// UserValidator implements the Validator interface for the account forms:
// RegisterRequest and LoginRequest.
//
// It supports both value and pointer receivers for every model type and
// allows optional field-level scoping via variadic field name arguments.
type UserValidator struct{}

// NewUserValidator constructs a new UserValidator and returns it as the
// Validator interface.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj.
//
// Supported types:
//   - models.RegisterRequest / *models.RegisterRequest
//   - models.LoginRequest / *models.LoginRequest
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// every field of the form is validated.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateRegisterRequest checks a registration form.
//
// Presence of every field is checked before its format, so an incomplete
// form always reports ErrInvalidDataProvided. Returns the first encountered
// validation error or nil.
func (v *UserValidator) validateRegisterRequest(_ context.Context, req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword, FieldPasswordConfirm}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(req.Name) == "" {
				return ErrInvalidDataProvided
			}
		case FieldEmail:
			if strings.TrimSpace(req.Email) == "" {
				return ErrInvalidDataProvided
			}
		case FieldPassword, FieldPasswordConfirm:
			if req.Password == "" {
				return ErrInvalidDataProvided
			}
		default:
			return ErrUnknownField
		}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if _, err := mail.ParseAddress(req.Email); err != nil {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if len(req.Password) < MinPasswordLength {
				return ErrPasswordTooShort
			}
		case FieldPasswordConfirm:
			if req.Password != req.PasswordConfirm {
				return ErrPasswordsDoNotMatch
			}
		}
	}

	return nil
}

// validateLoginRequest checks that the credentials are present. Their
// format is not checked: a malformed email simply matches no account.
func (v *UserValidator) validateLoginRequest(_ context.Context, req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if strings.TrimSpace(req.Email) == "" {
				return ErrInvalidDataProvided
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrInvalidDataProvided
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
