// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package security holds the input hardening primitives used by the request
// pipeline: operator-key stripping, XSS sanitizing and HTTP parameter
// pollution handling.
//
// The functions work on the generic shapes produced by decoding JSON
// (map[string]any, []any, string) and on url.Values for query strings and
// URL-encoded forms.
package security
