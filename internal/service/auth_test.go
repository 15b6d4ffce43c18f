package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/recipe-share/internal/config"
	"github.com/iliyamo/recipe-share/internal/repository"
	"github.com/iliyamo/recipe-share/internal/utils"
)

func testAuthService(db *sql.DB) *AuthService {
	return NewAuthService(repository.NewUserRepo(db), repository.NewTokenRepo(db), config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 30,
		BcryptCost:     4,
	})
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "role", "created_at", "updated_at",
	})
}

func TestLogInUnknownIdentifier(t *testing.T) {
	db, mock := newMockDB(t)
	svc := testAuthService(db)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("ghost", "ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.LogIn(context.Background(), "ghost", "whatever-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogInWrongPasswordSameError(t *testing.T) {
	db, mock := newMockDB(t)
	svc := testAuthService(db)

	hash, err := utils.HashPassword("right-password", 4)
	require.NoError(t, err)

	ts := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice", "alice").
		WillReturnRows(userRows().AddRow(1, "alice", "alice@example.com", hash, "USER", ts, ts))

	// Wrong password must be indistinguishable from an unknown account.
	_, err = svc.LogIn(context.Background(), "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogInSuccessIssuesTokenPair(t *testing.T) {
	db, mock := newMockDB(t)
	svc := testAuthService(db)

	hash, err := utils.HashPassword("right-password", 4)
	require.NoError(t, err)

	ts := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username=").
		WithArgs("alice", "alice").
		WillReturnRows(userRows().AddRow(1, "alice", "alice@example.com", hash, "CREATOR", ts, ts))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	res, err := svc.LogIn(context.Background(), "alice", "right-password")
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)
	assert.NotEmpty(t, res.Access.Token)
	assert.Len(t, res.Refresh.Raw, 96)
	assert.NoError(t, mock.ExpectationsWereMet())
}
