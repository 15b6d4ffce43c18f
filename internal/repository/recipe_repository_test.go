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

func TestReplaceStepsRewritesWholeSet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM recipe_steps WHERE recipe_id=?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	// Zero order falls back to the 1-based position.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_steps (recipe_id, step_number, instruction) VALUES (?,?,?)")).
		WithArgs(uint64(5), uint32(1), "chop the onions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_steps (recipe_id, step_number, instruction) VALUES (?,?,?)")).
		WithArgs(uint64(5), uint32(2), "fry until golden").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.ReplaceSteps(context.Background(), 5, []StepInput{
		{Instruction: "chop the onions"},
		{Instruction: "fry until golden"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceIngredientsUnknownIDRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM recipe_ingredients WHERE recipe_id=?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM ingredients WHERE id=? LIMIT 1")).
		WithArgs(uint64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.ReplaceIngredients(context.Background(), 5, []IngredientRef{
		{IngredientID: 404},
	})
	assert.ErrorIs(t, err, ErrIngredientNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceIngredientsDuplicateNamesCollapse(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM recipe_ingredients WHERE recipe_id=?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// First line misses by name and inserts the row.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM ingredients WHERE name=? LIMIT 1")).
		WithArgs("salt").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ingredients (name, unit) VALUES (?,?)")).
		WithArgs("salt", nil).
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES (?,?)")).
		WithArgs(uint64(5), uint64(21)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Second line resolves to the row just inserted; no second link row.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM ingredients WHERE name=? LIMIT 1")).
		WithArgs("salt").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectCommit()

	err := repo.ReplaceIngredients(context.Background(), 5, []IngredientRef{
		{Name: "salt"},
		{Name: "salt"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceIngredientsBlankNameRejected(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM recipe_ingredients WHERE recipe_id=?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ReplaceIngredients(context.Background(), 5, []IngredientRef{{Name: "   "}})
	assert.ErrorIs(t, err, ErrIngredientNameRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRemovesDependentRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepo(db)

	mock.ExpectBegin()
	for _, q := range []string{
		"DELETE FROM recipe_steps WHERE recipe_id=?",
		"DELETE FROM recipe_ingredients WHERE recipe_id=?",
		"DELETE FROM recipe_tags WHERE recipe_id=?",
		"DELETE FROM reviews WHERE recipe_id=?",
		"DELETE FROM collection_items WHERE recipe_id=?",
		"DELETE FROM recipes WHERE id=?",
	} {
		mock.ExpectExec(regexp.QuoteMeta(q)).
			WithArgs(uint64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPublicPaging(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM recipes WHERE is_public=1 AND LOWER(title) LIKE ?")).
		WithArgs("%soup%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+recipeColumns+" FROM recipes WHERE is_public=1 AND LOWER(title) LIKE ? ORDER BY id LIMIT ? OFFSET ?")).
		WithArgs("%soup%", 20, 20).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "title", "description", "is_public", "servings",
			"prep_minutes", "cook_minutes", "avg_rating", "created_at", "updated_at",
		}))

	_, total, err := repo.ListPublic(context.Background(), "Soup", 2, 20)
	require.NoError(t, err)
	assert.Equal(t, 45, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
