package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"auth-web-server/config"
	"auth-web-server/internal/model"
	"auth-web-server/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepoTest(t *testing.T) (*repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return repository.NewUserRepository(&config.Database{DB: sqlxDB}), mock
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock := newUserRepoTest(t)

	mock.ExpectQuery("SELECT id, email, password_hash, role, created_at FROM users").
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	user, err := repo.FindByEmail(context.Background(), "missing@example.com")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_Success(t *testing.T) {
	repo, mock := newUserRepoTest(t)
	createdAt := time.Now()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "created_at"}).
		AddRow(int64(42), "user@example.com", "hash", "user", createdAt)

	mock.ExpectQuery("SELECT id, email, password_hash, role, created_at FROM users").
		WithArgs("user@example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "user@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_EmailTaken(t *testing.T) {
	repo, mock := newUserRepoTest(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("taken@example.com", "hash", model.RoleUser).
		WillReturnError(&pq.Error{Code: "23505"})

	user, err := repo.CreateUser(context.Background(), &model.User{
		Email:        "taken@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, model.ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newUserRepoTest(t)
	createdAt := time.Now()

	rows := sqlmock.NewRows([]string{"id", "email", "role", "created_at"}).
		AddRow(int64(1), "new@example.com", "user", createdAt)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("new@example.com", "hash", model.RoleUser).
		WillReturnRows(rows)

	user, err := repo.CreateUser(context.Background(), &model.User{
		Email:        "new@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePassword_NotFound(t *testing.T) {
	repo, mock := newUserRepoTest(t)

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs(int64(99), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(context.Background(), 99, "newhash")

	assert.ErrorIs(t, err, model.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
