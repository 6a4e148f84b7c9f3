// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestUserRepo(t *testing.T, dialect Dialect) (*userRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db := &DB{DB: conn, dialect: dialect, logger: logger.Nop()}
	switch dialect {
	case DialectPostgres:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	case DialectSQLite:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	}

	repo := &userRepository{
		db:     db,
		logger: logger.Nop(),
		now:    func() time.Time { return fixedNow },
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id", "name", "email", "role", "password_hash", "created_at"})
}

func TestCreateUser_Success(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
	}{
		{
			name:    "postgres placeholders",
			dialect: DialectPostgres,
			query:   "INSERT INTO users (name,email,role,password_hash,created_at) VALUES ($1,$2,$3,$4,$5) RETURNING user_id",
		},
		{
			name:    "sqlite placeholders",
			dialect: DialectSQLite,
			query:   "INSERT INTO users (name,email,role,password_hash,created_at) VALUES (?,?,?,?,?) RETURNING user_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t, tt.dialect)
			user := models.User{Name: "John", Email: "john@example.com", Role: models.RoleUser, PasswordHash: "hash"}

			mock.ExpectQuery(regexp.QuoteMeta(tt.query)).
				WithArgs(user.Name, user.Email, user.Role, user.PasswordHash, fixedNow).
				WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

			created, err := repo.CreateUser(context.Background(), user)
			require.NoError(t, err)

			assert.Equal(t, int64(7), created.UserID)
			assert.Equal(t, fixedNow, created.CreatedAt)
			assert.Equal(t, user.Email, created.Email)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		err     error
	}{
		{name: "postgres", dialect: DialectPostgres, err: pgError(pgerrcode.UniqueViolation)},
		{name: "sqlite", dialect: DialectSQLite, err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t, tt.dialect)

			mock.ExpectQuery("INSERT INTO users").WillReturnError(tt.err)

			_, err := repo.CreateUser(context.Background(), models.User{Email: "john@example.com"})
			assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		})
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)
	dbErr := errors.New("db network error")

	mock.ExpectQuery("INSERT INTO users").WillReturnError(dbErr)

	_, err := repo.CreateUser(context.Background(), models.User{Email: "john@example.com"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, dbErr)
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, name, email, role, password_hash, created_at FROM users WHERE email = $1")).
		WithArgs("john@example.com").
		WillReturnRows(userRows().AddRow(1, "John", "john@example.com", models.RoleUser, "hash", fixedNow))

	found, err := repo.FindUserByEmail(context.Background(), "john@example.com")
	require.NoError(t, err)

	assert.Equal(t, models.User{
		UserID:       1,
		Name:         "John",
		Email:        "john@example.com",
		Role:         models.RoleUser,
		PasswordHash: "hash",
		CreatedAt:    fixedNow,
	}, found)
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectSQLite)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id = ?")).
		WithArgs(int64(42)).
		WillReturnRows(userRows())

	_, err := repo.FindUserByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestFindUserByID_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)

	mock.ExpectQuery("SELECT user_id").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1))

	_, err := repo.FindUserByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestListUsers(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, name, email, role, password_hash, created_at FROM users ORDER BY user_id")).
		WillReturnRows(userRows().
			AddRow(1, "John", "john@example.com", models.RoleUser, "h1", fixedNow).
			AddRow(2, "Ann", "ann@example.com", models.RoleAdmin, "h2", fixedNow))

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, "Ann", users[1].Name)
	assert.Equal(t, models.RoleAdmin, users[1].Role)
}

func TestListUsers_Empty(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)

	mock.ExpectQuery("SELECT user_id").WillReturnRows(userRows())

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestListUsers_QueryError(t *testing.T) {
	repo, mock := newTestUserRepo(t, DialectPostgres)

	mock.ExpectQuery("SELECT user_id").WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)
	assert.NotErrorIs(t, err, ErrExecutingQuery)
}

func TestFindUserByID_TransientErrors(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		err     error
		want    error
	}{
		{name: "postgres deadlock", dialect: DialectPostgres, err: pgError(pgerrcode.DeadlockDetected), want: ErrDatabaseUnavailable},
		{name: "postgres starting up", dialect: DialectPostgres, err: pgError(pgerrcode.CannotConnectNow), want: ErrDatabaseUnavailable},
		{name: "postgres syntax error", dialect: DialectPostgres, err: pgError(pgerrcode.SyntaxError), want: ErrScanningRow},
		{name: "sqlite busy", dialect: DialectSQLite, err: sqlite3.Error{Code: sqlite3.ErrBusy}, want: ErrDatabaseUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t, tt.dialect)
			mock.ExpectQuery("SELECT user_id").WillReturnError(tt.err)

			_, err := repo.FindUserByID(context.Background(), 1)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
