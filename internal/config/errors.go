// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

var (
	// ErrLoadingEnvFile is returned when an explicitly requested dotenv file
	// cannot be read or parsed.
	ErrLoadingEnvFile = errors.New("error loading env file")
	// ErrUnsupportedConfigFile is returned for config files whose extension
	// is not .json, .toml, .yaml or .yml.
	ErrUnsupportedConfigFile = errors.New("unsupported config file format")
)

// Validation errors returned by [StructuredConfig.validate].
var (
	ErrInvalidPort           = errors.New("invalid port")
	ErrInvalidMode           = errors.New("invalid mode")
	ErrInvalidRateLimit      = errors.New("invalid rate limit configuration")
	ErrInvalidBodyLimit      = errors.New("invalid body limit")
	ErrInvalidAppConfigs     = errors.New("invalid app configuration")
	ErrInvalidServerConfigs  = errors.New("invalid server configuration")
)
