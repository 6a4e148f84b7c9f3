// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/models"
)

// userRepository is the SQL implementation of [UserRepository] for both
// PostgreSQL and SQLite. Queries are built with squirrel using the
// placeholder format of the handle's dialect.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser persists a new user record and returns it with the
// server-assigned UserID and CreatedAt.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - transient driver error → wrapped [ErrDatabaseUnavailable].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	createdAt := r.now()
	query, args, err := buildCreateUserQuery(r.db.builder, user, createdAt)
	if err != nil {
		return models.User{}, err
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.UserID); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, r.queryError(ErrExecutingQuery, err)
	}

	user.CreatedAt = createdAt
	return user, nil
}

// FindUserByEmail returns the user registered with email or
// [ErrNoUserWasFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"email": email})
}

// FindUserByID returns the user with userID or [ErrNoUserWasFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, sq.Eq{"user_id": userID})
}

func (r *userRepository) findUser(ctx context.Context, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.db.builder, where)
	if err != nil {
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.findUser").Msg("error selecting user")
		return models.User{}, r.queryError(ErrScanningRow, err)
	}

	return user, nil
}

// ListUsers returns every user ordered by ID.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.db.builder)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error selecting users")
		return nil, r.queryError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// queryError wraps a driver error with sentinel, or with
// [ErrDatabaseUnavailable] when the dialect classifies it as transient.
func (r *userRepository) queryError(sentinel, err error) error {
	if r.db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.UserID, &user.Name, &user.Email, &user.Role, &user.PasswordHash, &user.CreatedAt)
	return user, err
}
