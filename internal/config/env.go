// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// defaultEnvFile is loaded when neither ENV_FILE nor --env-file is given.
// A missing default file is not an error.
const defaultEnvFile = "config.env"

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// resolveEnvFile picks the dotenv file path: the --env-file flag, then the
// ENV_FILE variable, then [defaultEnvFile].
func resolveEnvFile(flags *pflag.FlagSet) string {
	if flags != nil {
		if path, err := flags.GetString(flagEnvFile); err == nil && path != "" {
			return path
		}
	}

	if path := os.Getenv("ENV_FILE"); path != "" {
		return path
	}

	return defaultEnvFile
}

// loadDotEnv loads path into the process environment with godotenv.
// Variables already present in the environment are not overwritten.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if path == defaultEnvFile && errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("%w %q: %w", ErrLoadingEnvFile, path, err)
}
