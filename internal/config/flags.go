// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	flagAddress        = "address"
	flagPort           = "port"
	flagMode           = "mode"
	flagConfig         = "config"
	flagEnvFile        = "env-file"
	flagDSN            = "dsn"
	flagMigrate        = "migrate"
	flagTokenSignKey   = "token-sign-key"
	flagTokenIssuer    = "token-issuer"
	flagTokenDuration  = "token-duration"
	flagRateLimitStore = "rate-limit-store"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// RegisterFlags declares every configuration flag on fs. The values are read
// back by [GetStructuredConfig] once fs has been parsed (for example by a
// cobra command).
//
// Flags:
//
//	-a/--address          server address in format [host]:[port]
//	-p/--port             server port
//	--mode                runtime mode (development, production, test)
//	-c/--config           JSON, TOML or YAML config file path
//	--env-file            dotenv file path
//	-d/--dsn              database DSN
//	--migrate             run migrations after connecting
//	--token-sign-key      token signing key
//	--token-issuer        token issuer name
//	--token-duration      token duration (e.g., "1h", "30m")
//	--rate-limit-store    rate-limit store (memory, redis, bucket)
func RegisterFlags(fs *pflag.FlagSet) {
	fs.VarP(&NetAddress{}, flagAddress, "a", "Net address host:port")
	fs.IntP(flagPort, "p", 0, "Server port")
	fs.String(flagMode, "", "Runtime mode: development, production or test")
	fs.StringP(flagConfig, "c", "", "Config file path (.json, .toml, .yaml)")
	fs.String(flagEnvFile, "", "Dotenv file path")
	fs.StringP(flagDSN, "d", "", "Database DSN")
	fs.Bool(flagMigrate, false, "Run database migrations after connecting")
	fs.String(flagTokenSignKey, "", "Token signing key")
	fs.String(flagTokenIssuer, "", "Token issuer")
	fs.Duration(flagTokenDuration, 0, "Token duration (e.g., 1h, 30m)")
	fs.String(flagRateLimitStore, "", "Rate-limit store: memory, redis or bucket")
}

// parseFlags reads the flags declared by [RegisterFlags] from an already
// parsed fs. Flags that were never declared are reported as errors.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	var errs []error
	get := func(name string, read func() error) {
		if err := read(); err != nil {
			errs = append(errs, fmt.Errorf("flag %q: %w", name, err))
		}
	}

	get(flagPort, func() (err error) { cfg.Port, err = fs.GetInt(flagPort); return })
	get(flagMode, func() (err error) { cfg.Mode, err = fs.GetString(flagMode); return })
	get(flagConfig, func() (err error) { cfg.ConfigFilePath, err = fs.GetString(flagConfig); return })
	get(flagEnvFile, func() (err error) { cfg.EnvFilePath, err = fs.GetString(flagEnvFile); return })
	get(flagDSN, func() (err error) { cfg.Storage.DB.DSN, err = fs.GetString(flagDSN); return })
	get(flagMigrate, func() (err error) { cfg.Storage.DB.Migrate, err = fs.GetBool(flagMigrate); return })
	get(flagTokenSignKey, func() (err error) { cfg.App.TokenSignKey, err = fs.GetString(flagTokenSignKey); return })
	get(flagTokenIssuer, func() (err error) { cfg.App.TokenIssuer, err = fs.GetString(flagTokenIssuer); return })
	get(flagTokenDuration, func() (err error) { cfg.App.TokenDuration, err = fs.GetDuration(flagTokenDuration); return })
	get(flagRateLimitStore, func() (err error) { cfg.Security.RateLimit.Store, err = fs.GetString(flagRateLimitStore); return })

	if f := fs.Lookup(flagAddress); f != nil {
		if addr, ok := f.Value.(*NetAddress); ok && f.Changed {
			cfg.Host = addr.Host
			if addr.Port != 0 {
				cfg.Port = addr.Port
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is empty or
// "localhost", and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
