// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

// Runtime modes accepted in [StructuredConfig.Mode]. The variable is read from
// NODE_ENV to stay compatible with existing deployment manifests.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
	ModeTest        = "test"
)

// Rate-limit store kinds accepted in [RateLimit.Store].
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
	RateLimitStoreBucket = "bucket"
)

// StructuredConfig is the top-level configuration container for the
// go-secure-api application. It aggregates all sub-configurations and is
// populated by merging defaults, an optional dotenv file, environment
// variables, command-line flags, and an optional config file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token settings used by the authentication route group.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds timeouts for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Security holds the settings of the security stage set: rate limiting,
	// parameter-pollution whitelist, body size limit and allowed hosts.
	Security Security `envPrefix:"SECURITY_"`

	// Host is the interface the HTTP server binds to. Empty means all
	// interfaces.
	// Env: HOST
	Host string `env:"HOST"`

	// Port is the TCP port the HTTP server listens on.
	// Env: PORT
	Port int `env:"PORT"`

	// Mode is the runtime mode: development enables request logging and
	// verbose error responses.
	// Env: NODE_ENV
	Mode string `env:"NODE_ENV"`

	// ConfigFilePath is the optional path to a JSON, TOML or YAML
	// configuration file, merged on top of every other source.
	// Env: CONFIG
	ConfigFilePath string `env:"CONFIG"`

	// EnvFilePath is the dotenv file loaded into the process environment
	// before environment variables are parsed.
	// Env: ENV_FILE
	EnvFilePath string `env:"ENV_FILE"`
}

// App holds token settings for the authentication route group.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string. postgres:// and postgresql://
	// DSNs are served by pgx, sqlite:// and file: DSNs by go-sqlite3.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// Migrate runs the embedded goose migrations right after the database
	// connection is established.
	// Env: STORAGE_DB_MIGRATE
	Migrate bool `env:"MIGRATE"`
}

// Server holds timeout settings for the inbound HTTP server.
type Server struct {
	// Env: SERVER_READ_TIMEOUT
	ReadTimeout time.Duration `env:"READ_TIMEOUT"`

	// Env: SERVER_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown after a termination signal.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Security holds the configuration of the request security stages.
type Security struct {
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// TrustXForwardedFor keys the rate limiter by the first X-Forwarded-For
	// address instead of the connection's remote address.
	// Env: SECURITY_TRUST_XFF
	TrustXForwardedFor bool `env:"TRUST_XFF"`

	// HPPWhitelist lists query parameters allowed to carry several values.
	// Env: SECURITY_HPP_WHITELIST (comma separated)
	HPPWhitelist []string `env:"HPP_WHITELIST" envSeparator:","`

	// BodyLimit is the maximum accepted request body size in bytes.
	// Env: SECURITY_BODY_LIMIT
	BodyLimit int64 `env:"BODY_LIMIT"`

	// AllowedHosts restricts accepted Host headers. Empty allows any host.
	// Env: SECURITY_ALLOWED_HOSTS (comma separated)
	AllowedHosts []string `env:"ALLOWED_HOSTS" envSeparator:","`
}

// RateLimit holds the per-client request quota applied under Prefix.
type RateLimit struct {
	// Env: SECURITY_RATE_LIMIT_MAX
	Max int `env:"MAX"`

	// Env: SECURITY_RATE_LIMIT_WINDOW
	Window time.Duration `env:"WINDOW"`

	// Prefix scopes the limiter to paths under it.
	// Env: SECURITY_RATE_LIMIT_PREFIX
	Prefix string `env:"PREFIX"`

	// Message is the plain-text body of a rejected request.
	// Env: SECURITY_RATE_LIMIT_MESSAGE
	Message string `env:"MESSAGE"`

	// Store selects the window state backend: memory, redis or bucket.
	// Env: SECURITY_RATE_LIMIT_STORE
	Store string `env:"STORE"`

	// Env: SECURITY_RATE_LIMIT_REDIS_ADDR
	RedisAddr string `env:"REDIS_ADDR"`

	// Env: SECURITY_RATE_LIMIT_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Env: SECURITY_RATE_LIMIT_REDIS_DB
	RedisDB int `env:"REDIS_DB"`

	// CleanupEvery is the period of the janitor evicting expired windows
	// from the memory store.
	// Env: SECURITY_RATE_LIMIT_CLEANUP_EVERY
	CleanupEvery time.Duration `env:"CLEANUP_EVERY"`
}

// defaultConfig returns the values applied before any other source.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-secure-api",
			TokenDuration: 24 * time.Hour,
		},
		Server: Server{
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: Security{
			RateLimit: RateLimit{
				Max:          100,
				Window:       time.Hour,
				Prefix:       "/api",
				Message:      "Too many request from this IP, please try again in an hour!",
				Store:        RateLimitStoreMemory,
				CleanupEvery: 5 * time.Minute,
			},
			BodyLimit: 100 << 10,
		},
		Port:        3000,
		Mode:        ModeProduction,
		EnvFilePath: defaultEnvFile,
	}
}

// IsDevelopment reports whether the application runs in development mode.
func (cfg *StructuredConfig) IsDevelopment() bool {
	return cfg.Mode == ModeDevelopment
}

// Address returns the host:port the HTTP server listens on.
func (cfg *StructuredConfig) Address() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables (after the dotenv file is loaded into them)
//  3. Command-line flags registered with [RegisterFlags]
//  4. Config file (path resolved from sources 2 and 3)
//
// flags may be nil, in which case command-line flags are skipped.
func GetStructuredConfig(flags *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv(flags).
		withEnv().
		withFlags(flags).
		withFile().
		build()
}
