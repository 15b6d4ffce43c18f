// This file defines the ReviewRepo. Every review mutation recomputes the
// recipe's denormalized average rating through a single aggregate UPDATE
// executed in the same transaction, so there is no read-then-write window
// where two concurrent submissions could settle on a stale mean.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/recipe-share/internal/model"
)

// recomputeAvgSQL rewrites recipes.avg_rating from the current review set.
// COALESCE turns the empty-set NULL into 0.
const recomputeAvgSQL = "UPDATE recipes SET avg_rating = (SELECT COALESCE(AVG(rating),0) FROM reviews WHERE recipe_id=?) WHERE id=?"

// ReviewRepo encapsulates all database queries related to reviews.
type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewColumns = "id, recipe_id, user_id, rating, comment, created_at, updated_at"

func scanReview(row interface{ Scan(...any) error }, rv *model.Review) error {
	var comment sql.NullString
	if err := row.Scan(&rv.ID, &rv.RecipeID, &rv.UserID, &rv.Rating, &comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return err
	}
	rv.Comment = comment.String
	return nil
}

// GetByID fetches one review. ErrReviewNotFound when absent.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (*model.Review, error) {
	var rv model.Review
	err := scanReview(r.db.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE id=? LIMIT 1", id), &rv)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &rv, nil
}

// ListByRecipe returns all reviews of a recipe, newest first.
func (r *ReviewRepo) ListByRecipe(ctx context.Context, recipeID uint64) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews WHERE recipe_id=? ORDER BY id DESC", recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := scanReview(rows, &rv); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Create inserts a review and recomputes the recipe's average rating in the
// same transaction. ErrConflict when the user already reviewed the recipe.
func (r *ReviewRepo) Create(ctx context.Context, recipeID, userID uint64, rating uint8, comment string) (id uint64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var existing uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM reviews WHERE recipe_id=? AND user_id=? LIMIT 1",
		recipeID, userID).Scan(&existing)
	switch {
	case err == nil:
		err = ErrConflict
		return 0, err
	case !errors.Is(err, sql.ErrNoRows):
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO reviews (recipe_id, user_id, rating, comment) VALUES (?,?,?,?)",
		recipeID, userID, rating, comment)
	if err != nil {
		if isDuplicateKey(err) {
			err = ErrConflict
		}
		return 0, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, recomputeAvgSQL, recipeID, recipeID); err != nil {
		return 0, err
	}
	return uint64(newID), nil
}

// Update changes the supplied fields of a review and recomputes the average
// of the review's recipe inside the same transaction.
func (r *ReviewRepo) Update(ctx context.Context, id uint64, rating *uint8, comment *string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var recipeID uint64
	if err = tx.QueryRowContext(ctx,
		"SELECT recipe_id FROM reviews WHERE id=? LIMIT 1", id).Scan(&recipeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrReviewNotFound
		}
		return err
	}

	if rating != nil {
		if _, err = tx.ExecContext(ctx,
			"UPDATE reviews SET rating=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", *rating, id); err != nil {
			return err
		}
	}
	if comment != nil {
		if _, err = tx.ExecContext(ctx,
			"UPDATE reviews SET comment=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", *comment, id); err != nil {
			return err
		}
	}
	_, err = tx.ExecContext(ctx, recomputeAvgSQL, recipeID, recipeID)
	return err
}

// Delete removes a review and recomputes the recipe's average rating in the
// same transaction; the average drops to 0 when no reviews remain.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var recipeID uint64
	if err = tx.QueryRowContext(ctx,
		"SELECT recipe_id FROM reviews WHERE id=? LIMIT 1", id).Scan(&recipeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrReviewNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, recomputeAvgSQL, recipeID, recipeID)
	return err
}
