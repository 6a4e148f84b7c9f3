// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/jackc/pgerrcode"

// ErrorClassification tells whether a failed statement hit a transient
// condition of the database. Repositories report transient failures as
// [ErrDatabaseUnavailable].
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

func (c ErrorClassification) String() string {
	if c == Retryable {
		return "retryable"
	}
	return "non-retryable"
}

// PostgresErrorClassifier implements [ErrorClassificator] for pgx errors.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify treats connection exceptions (class 08), transaction rollbacks
// (class 40) and 57P03 cannot_connect_now as retryable.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	code := postgresError(err)
	switch {
	case code == "":
		return NonRetryable
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		code == pgerrcode.CannotConnectNow:
		return Retryable
	default:
		return NonRetryable
	}
}

func (c *PostgresErrorClassifier) IsUniqueViolation(err error) bool {
	return postgresError(err) == pgerrcode.UniqueViolation
}
