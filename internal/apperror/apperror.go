// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apperror defines the typed error carried from stages and route
// handlers to the global error handler.
//
// An operational error is an expected failure whose message is safe to show
// to the client (bad input, missing resource, wrong credentials). Every other
// error is unexpected: the error handler hides its details in production.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// Values of [Error.Status].
const (
	StatusFail  = "fail"
	StatusError = "error"
)

// Error is an HTTP-facing application error. It is not modified after
// construction.
type Error struct {
	// Message is the client-facing message.
	Message string

	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Status is "fail" for 4xx codes and "error" for everything else.
	Status string

	// IsOperational marks expected errors whose message may be exposed.
	IsOperational bool

	// Stack is the call stack captured at construction.
	Stack string

	// Cause is the wrapped underlying error, if any.
	Cause error
}

// New returns an operational error with the given message and status code.
func New(message string, statusCode int) *Error {
	return newError(message, statusCode, true, nil)
}

// Wrap returns an operational error with the given message and status code
// that keeps err as its cause.
func Wrap(err error, message string, statusCode int) *Error {
	return newError(message, statusCode, true, err)
}

// Unexpected converts err into a non-operational 500 error. If err already
// is (or wraps) an [*Error], that error is returned unchanged.
func Unexpected(err error) *Error {
	if appErr, ok := As(err); ok {
		return appErr
	}

	message := http.StatusText(http.StatusInternalServerError)
	if err != nil {
		message = err.Error()
	}

	return newError(message, http.StatusInternalServerError, false, err)
}

func NotFound(message string) *Error {
	return New(message, http.StatusNotFound)
}

func BadRequest(message string) *Error {
	return New(message, http.StatusBadRequest)
}

// As reports whether err is or wraps an [*Error] and returns it.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusFor returns the [Error.Status] value for an HTTP status code.
func StatusFor(statusCode int) string {
	if statusCode >= 400 && statusCode < 500 {
		return StatusFail
	}
	return StatusError
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the cause so errors.Is and errors.As see through Error.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(message string, statusCode int, operational bool, cause error) *Error {
	return &Error{
		Message:       message,
		StatusCode:    statusCode,
		Status:        StatusFor(statusCode),
		IsOperational: operational,
		Stack:         captureStack(3),
		Cause:         cause,
	}
}

// captureStack renders the caller frames above skip in the
// "function\n\tfile:line" layout used by runtime/debug.Stack.
func captureStack(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}

	return sb.String()
}
