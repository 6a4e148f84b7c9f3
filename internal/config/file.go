// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// StructuredFileConfig mirrors [StructuredConfig] for config files. The same
// layout is accepted as JSON, TOML and YAML; the format is chosen by the file
// extension.
type StructuredFileConfig struct {
	Host string `json:"host" toml:"host" yaml:"host"`
	Port int    `json:"port" toml:"port" yaml:"port"`
	Mode string `json:"mode" toml:"mode" yaml:"mode"`

	App struct {
		TokenSignKey  string   `json:"token_sign_key" toml:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" toml:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" toml:"token_duration" yaml:"token_duration"`
	} `json:"app" toml:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN     string `json:"dsn" toml:"dsn" yaml:"dsn"`
			Migrate bool   `json:"migrate" toml:"migrate" yaml:"migrate"`
		} `json:"db" toml:"db" yaml:"db"`
	} `json:"storage" toml:"storage" yaml:"storage"`

	Server struct {
		ReadTimeout     Duration `json:"read_timeout" toml:"read_timeout" yaml:"read_timeout"`
		WriteTimeout    Duration `json:"write_timeout" toml:"write_timeout" yaml:"write_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `json:"server" toml:"server" yaml:"server"`

	Security struct {
		RateLimit struct {
			Max           int      `json:"max" toml:"max" yaml:"max"`
			Window        Duration `json:"window" toml:"window" yaml:"window"`
			Prefix        string   `json:"prefix" toml:"prefix" yaml:"prefix"`
			Message       string   `json:"message" toml:"message" yaml:"message"`
			Store         string   `json:"store" toml:"store" yaml:"store"`
			RedisAddr     string   `json:"redis_addr" toml:"redis_addr" yaml:"redis_addr"`
			RedisPassword string   `json:"redis_password" toml:"redis_password" yaml:"redis_password"`
			RedisDB       int      `json:"redis_db" toml:"redis_db" yaml:"redis_db"`
			CleanupEvery  Duration `json:"cleanup_every" toml:"cleanup_every" yaml:"cleanup_every"`
		} `json:"rate_limit" toml:"rate_limit" yaml:"rate_limit"`
		TrustXForwardedFor bool     `json:"trust_xff" toml:"trust_xff" yaml:"trust_xff"`
		HPPWhitelist       []string `json:"hpp_whitelist" toml:"hpp_whitelist" yaml:"hpp_whitelist"`
		BodyLimit          int64    `json:"body_limit" toml:"body_limit" yaml:"body_limit"`
		AllowedHosts       []string `json:"allowed_hosts" toml:"allowed_hosts" yaml:"allowed_hosts"`
	} `json:"security" toml:"security" yaml:"security"`
}

func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &fileCfg)
	case ".toml":
		err = toml.Unmarshal(data, &fileCfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fileCfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedConfigFile, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file %q: %w", path, err)
	}

	return fileCfg.toStructuredConfig(), nil
}

func (f *StructuredFileConfig) toStructuredConfig() *StructuredConfig {
	rl := f.Security.RateLimit

	return &StructuredConfig{
		App: App{
			TokenSignKey:  f.App.TokenSignKey,
			TokenIssuer:   f.App.TokenIssuer,
			TokenDuration: time.Duration(f.App.TokenDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN:     f.Storage.DB.DSN,
				Migrate: f.Storage.DB.Migrate,
			},
		},
		Server: Server{
			ReadTimeout:     time.Duration(f.Server.ReadTimeout),
			WriteTimeout:    time.Duration(f.Server.WriteTimeout),
			ShutdownTimeout: time.Duration(f.Server.ShutdownTimeout),
		},
		Security: Security{
			RateLimit: RateLimit{
				Max:           rl.Max,
				Window:        time.Duration(rl.Window),
				Prefix:        rl.Prefix,
				Message:       rl.Message,
				Store:         rl.Store,
				RedisAddr:     rl.RedisAddr,
				RedisPassword: rl.RedisPassword,
				RedisDB:       rl.RedisDB,
				CleanupEvery:  time.Duration(rl.CleanupEvery),
			},
			TrustXForwardedFor: f.Security.TrustXForwardedFor,
			HPPWhitelist:       f.Security.HPPWhitelist,
			BodyLimit:          f.Security.BodyLimit,
			AllowedHosts:       f.Security.AllowedHosts,
		},
		Host: f.Host,
		Port: f.Port,
		Mode: f.Mode,
	}
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" in every supported config format, and from integer
// nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.UnmarshalText([]byte(value))
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// UnmarshalText is used by the TOML and YAML decoders.
func (d *Duration) UnmarshalText(text []byte) error {
	tmp, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
