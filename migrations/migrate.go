// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the SQL schema migrations and applies them with
// goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Goose dialects of the supported databases.
const (
	DialectPostgres = goose.DialectPostgres
	DialectSQLite   = goose.DialectSQLite3
)

var (
	ErrNilDB              = errors.New("db is nil")
	ErrUnsupportedDialect = errors.New("unsupported migration dialect")
)

// Migrate applies every pending migration of dialect to db.
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", ErrNilDB)
	}

	dir, err := migrationsDir(dialect)
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db, dir)
	if err != nil {
		return fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func migrationsDir(dialect goose.Dialect) (fs.FS, error) {
	var sub string
	switch dialect {
	case DialectPostgres:
		sub = "postgres"
	case DialectSQLite:
		sub = "sqlite"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}

	return fs.Sub(embedMigrations, sub)
}
