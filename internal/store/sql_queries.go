// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-secure-api/models"
)

const usersTable = "users"

var userColumns = []string{"user_id", "name", "email", "role", "password_hash", "created_at"}

// buildCreateUserQuery builds the INSERT of a new user returning its ID.
func buildCreateUserQuery(b sq.StatementBuilderType, user models.User, createdAt time.Time) (string, []any, error) {
	query, args, err := b.Insert(usersTable).
		Columns("name", "email", "role", "password_hash", "created_at").
		Values(user.Name, user.Email, user.Role, user.PasswordHash, createdAt).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildFindUserQuery builds a single-user SELECT filtered by where.
func buildFindUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildListUsersQuery builds the SELECT of every user ordered by ID.
func buildListUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(usersTable).
		OrderBy("user_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
