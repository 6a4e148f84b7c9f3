// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the process startup sequence and the message strings
// shared by the HTTP layer.
//
// All Msg* constants are human-readable strings written into HTTP response
// bodies or log entries. Keeping them in one place keeps the wording
// consistent throughout the API.
package app

const (
	// MsgHello is logged once for every request that reaches the annotators.
	MsgHello = "Hello from the server 👋"

	// MsgListening is logged when the HTTP listener is up. It takes the port.
	MsgListening = "Server is listening on port %d..."

	// MsgNotFound is the 404 message for unmatched routes. It takes the
	// original URL.
	MsgNotFound = "Can't find %s on this server"

	// MsgSomethingWentWrong replaces the message of unexpected errors in
	// production.
	MsgSomethingWentWrong = "Something went wrong!"

	// MsgInvalidJSON is returned when a JSON body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidFormData is returned when a URL-encoded body cannot be parsed.
	MsgInvalidFormData = "Invalid form data was passed"

	// MsgRequestTooLarge is returned when a body exceeds the configured limit.
	MsgRequestTooLarge = "Request entity too large"

	// MsgInvalidHost is returned when the Host header is not allowed.
	MsgInvalidHost = "Invalid host header"

	MsgInvalidDataProvided  = "Please provide name, email, password and passwordConfirm!"
	MsgProvideEmailPassword = "Please provide email and password!"
	MsgInvalidEmail         = "Please provide a valid email"
	MsgPasswordTooShort     = "Password must be at least 8 characters long"
	MsgPasswordsDoNotMatch  = "Passwords are not the same!"
	MsgEmailAlreadyExists   = "Email is already in use"
	MsgIncorrectCredentials = "Incorrect email or password"

	// MsgDatabaseUnavailable is returned when the database reports a
	// transient failure.
	MsgDatabaseUnavailable = "Database is temporarily unavailable, please try again later."

	// MsgNotLoggedIn is returned when a protected route is called without a
	// token.
	MsgNotLoggedIn = "You are not logged in! Please log in to get access."

	// MsgInvalidToken is returned when the token is expired, malformed or
	// signed with another key.
	MsgInvalidToken = "Invalid token. Please log in again!"

	// MsgUserNoLongerExists is returned when a valid token belongs to a
	// deleted account.
	MsgUserNoLongerExists = "The user belonging to this token does no longer exist."

	MsgNoPermission  = "You do not have permission to perform this action"
	MsgInvalidUserID = "Invalid user ID"
	MsgNoUserWithID  = "No user found with that ID"
)
