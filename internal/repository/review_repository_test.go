package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestReviewCreateRecomputesAverageInSameTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM reviews WHERE recipe_id=? AND user_id=? LIMIT 1")).
		WithArgs(uint64(7), uint64(3)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews (recipe_id, user_id, rating, comment) VALUES (?,?,?,?)")).
		WithArgs(uint64(7), uint64(3), uint8(5), "great").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(regexp.QuoteMeta(recomputeAvgSQL)).
		WithArgs(uint64(7), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), 7, 3, 5, "great")
	require.NoError(t, err)
	assert.Equal(t, uint64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewCreateDuplicateRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM reviews WHERE recipe_id=? AND user_id=? LIMIT 1")).
		WithArgs(uint64(7), uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 7, 3, 4, "")
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewUpdateUnknownID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT recipe_id FROM reviews WHERE id=? LIMIT 1")).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	rating := uint8(2)
	err := repo.Update(context.Background(), 99, &rating, nil)
	assert.ErrorIs(t, err, ErrReviewNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewDeleteRecomputesAverage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT recipe_id FROM reviews WHERE id=? LIMIT 1")).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"recipe_id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE id=?")).
		WithArgs(uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(recomputeAvgSQL)).
		WithArgs(uint64(7), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 11)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
