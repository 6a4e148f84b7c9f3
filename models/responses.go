// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// StatusSuccess is the status of every successful JSON response.
const StatusSuccess = "success"

// AuthResponse is returned by the register and login endpoints.
type AuthResponse struct {
	Status string    `json:"status"`
	Token  string    `json:"token"`
	Data   *UserData `json:"data,omitempty"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Status string   `json:"status"`
	Data   UserData `json:"data"`
}

type UserData struct {
	User User `json:"user"`
}

// UsersResponse wraps a list of users.
type UsersResponse struct {
	Status  string    `json:"status"`
	Results int       `json:"results"`
	Data    UsersData `json:"data"`
}

type UsersData struct {
	Users []User `json:"users"`
}

// StatusResponse carries only a status, e.g. after logout.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every error response. Error and Stack are
// only filled in development mode.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   any    `json:"error,omitempty"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}
