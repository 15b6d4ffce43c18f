package service

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/recipe-share/internal/model"
	"github.com/iliyamo/recipe-share/internal/repository"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func recipeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "owner_id", "title", "description", "is_public", "servings",
		"prep_minutes", "cook_minutes", "avg_rating", "created_at", "updated_at",
	})
}

func TestListClampsPageSize(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRecipeService(repository.NewRecipeRepo(db))

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(250))
	// Requested 999, stored limit must be the 100 ceiling; page -3 becomes 1.
	mock.ExpectQuery("SELECT (.+) FROM recipes").
		WithArgs("%%", 100, 0).
		WillReturnRows(recipeRows())

	page, err := svc.List(context.Background(), "", -3, 999)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.PageSize)
	assert.Equal(t, 250, page.Total)
	assert.True(t, page.HasNext)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDefaultPageSizeAndHasNext(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRecipeService(repository.NewRecipeRepo(db))

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))
	mock.ExpectQuery("SELECT (.+) FROM recipes").
		WithArgs("%%", 20, 0).
		WillReturnRows(recipeRows())

	page, err := svc.List(context.Background(), "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, page.PageSize)
	assert.False(t, page.HasNext) // 1*20 >= 15
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHidesPrivateRecipeFromStrangers(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRecipeService(repository.NewRecipeRepo(db))

	ts := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM recipes WHERE id=").
		WithArgs(uint64(5)).
		WillReturnRows(recipeRows().AddRow(5, 1, "secret stew", "", false, 2, 10, 30, 0.0, ts, ts))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, recipe_id, step_number, instruction FROM recipe_steps")).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "recipe_id", "step_number", "instruction"}))
	mock.ExpectQuery("FROM recipe_ingredients").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "unit"}))
	mock.ExpectQuery("FROM recipe_tags").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	// Owner is user 1; user 2 with plain USER role gets the same error as a
	// missing recipe, so existence is not leaked.
	_, err := svc.Get(context.Background(), 5, 2, model.RoleUser)
	assert.ErrorIs(t, err, repository.ErrRecipeNotFound)
}

func TestCreateRejectsPlainUsers(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewRecipeService(repository.NewRecipeRepo(db))

	_, err := svc.Create(context.Background(), 2, model.RoleUser,
		&model.Recipe{Title: "nope"}, nil, nil, nil)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestUpdateForbiddenForNonOwner(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRecipeService(repository.NewRecipeRepo(db))

	ts := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM recipes WHERE id=").
		WithArgs(uint64(5)).
		WillReturnRows(recipeRows().AddRow(5, 1, "stew", "", true, 2, 10, 30, 0.0, ts, ts))

	title := "hijacked"
	_, err := svc.Update(context.Background(), 5, 2, model.RoleCreator,
		repository.RecipePatch{Title: &title}, nil)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}
