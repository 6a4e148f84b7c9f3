// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user.
	UserID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login identifier of the user.
	Email string `json:"email"`

	// Role is either RoleUser or RoleAdmin.
	Role string `json:"role"`

	// PasswordHash is the bcrypt hash of the user's password. It is never
	// serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RegisterRequest is the body of a sign-up request.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// LoginRequest is the body of a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
