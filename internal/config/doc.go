// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Dotenv file, loaded into the process environment
//  3. Environment variables
//  4. Command-line flags
//  5. JSON, TOML or YAML config file
//
// The main entry point is [GetStructuredConfig]; flags are declared on a
// cobra or pflag flag set with [RegisterFlags].
package config
