package user

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() { sqlxDB.Close() }
	return repo, mock, closer
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "balance", "created_at"})
}

func TestCreate_ReturnsInsertedUser(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("user@mail.ru", "hash", "user").
		WillReturnRows(userRows().AddRow(1, "user@mail.ru", "hash", "user", 0.0, time.Now()))

	u, err := repo.Create(context.Background(), "user@mail.ru", "hash", "user")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.Equal(t, 0.0, u.Balance)
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery("SELECT id, email, password_hash, role, balance, created_at").
		WithArgs("ghost@mail.ru").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.FindByEmail(context.Background(), "ghost@mail.ru")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, u)
}

func TestFindByID_ReturnsBalance(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery("SELECT id, email, password_hash, role, balance, created_at").
		WithArgs(1).
		WillReturnRows(userRows().AddRow(1, "user@mail.ru", "hash", "user", 1250.99, time.Now()))

	u, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1250.99, u.Balance)
}

func TestEmailExists(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("user@mail.ru").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "user@mail.ru")
	require.NoError(t, err)
	assert.True(t, exists)
}
