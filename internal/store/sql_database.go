// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/migrations"
	"github.com/pressly/goose/v3"
)

// Dialect identifies the SQL database behind a [DB].
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DB is a database handle shared by the repositories. It is created before
// the connection is established: [DB.Connect] verifies the connection and is
// the startup prerequisite of the HTTP server.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	openErr error
}

// NewDB opens a handle for the DSN in cfg without contacting the database.
// postgres:// and postgresql:// DSNs use the pgx driver; sqlite://, file:
// and :memory: DSNs use go-sqlite3. An empty or unsupported DSN is reported
// by [DB.Connect].
func NewDB(cfg config.DB, log *logger.Logger) *DB {
	db := &DB{logger: log}

	dialect, source, err := ParseDSN(cfg.DSN)
	if err != nil {
		db.openErr = err
		return db
	}

	switch dialect {
	case DialectPostgres:
		db.DB, err = openPostgres(source)
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	case DialectSQLite:
		db.DB, err = openSQLite(source)
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	}
	db.dialect = dialect
	db.openErr = err

	return db
}

// ParseDSN returns the dialect of dsn and the data source name passed to the
// driver.
func ParseDSN(dsn string) (Dialect, string, error) {
	dsn = strings.TrimSpace(dsn)

	switch {
	case dsn == "":
		return "", "", ErrEmptyDSN
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DialectPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return DialectSQLite, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return DialectSQLite, dsn, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
	}
}

// Connect implements [Connector]: it verifies that the database is
// reachable.
func (db *DB) Connect(ctx context.Context) error {
	if db.openErr != nil {
		return fmt.Errorf("error occured during database connection: %w", db.openErr)
	}

	if err := db.PingContext(ctx); err != nil {
		db.logger.Err(err).Str("func", "*DB.Connect").Msg("error connecting database (ping)")
		return fmt.Errorf("error connecting database (ping): %w", err)
	}

	db.logger.Info().Str("func", "*DB.Connect").Str("dialect", string(db.dialect)).Msg("connected to database successfully")
	return nil
}

// Migrate applies the embedded schema migrations of the handle's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	if db.openErr != nil {
		return db.openErr
	}

	var dialect goose.Dialect
	switch db.dialect {
	case DialectPostgres:
		dialect = migrations.DialectPostgres
	case DialectSQLite:
		dialect = migrations.DialectSQLite
	}

	return migrations.Migrate(ctx, db.DB, dialect)
}

// Dialect returns the dialect of the handle.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Close closes the underlying pool. It is safe to call on a handle whose
// DSN could not be opened.
func (db *DB) Close() error {
	if db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

// redactDSN hides everything after the scheme so credentials never reach
// the logs.
func redactDSN(dsn string) string {
	if scheme, _, ok := strings.Cut(dsn, "://"); ok {
		return scheme + "://***"
	}
	return "***"
}
