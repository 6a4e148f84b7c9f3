// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the account forms submitted to the
// authentication route group before the services act on them.
//
// [UserValidator] accepts [models.RegisterRequest] and [models.LoginRequest],
// by value or by pointer. Register forms must carry a name, a well-formed
// email, a password of at least [MinPasswordLength] characters and a
// matching confirmation; login forms must carry an email and a password.
// Failures are reported with the sentinel errors of this package so the
// HTTP layer can map them to client errors.
package validators

import "context"

// Validator checks one submitted form. When fields are given, only those
// fields are checked.
type Validator interface {
	Validate(ctx context.Context, form any, fields ...string) error
}
