// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the application.
//
// Every request runs through a fixed, ordered list of pipeline stages
// (trace ID, hardening headers, rate limiting, sanitization, parameter
// pollution guard, CORS, body parsing, development logging, annotators)
// before the chi router dispatches it to a route group. Stages and route
// handlers report failures as errors; all of them end up in
// [Handler.HandleError].
package http
