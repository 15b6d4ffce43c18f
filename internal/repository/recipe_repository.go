// This file defines the RecipeRepo, which owns every multi-record write for
// the recipe aggregate: the recipe row, its ordered steps and its ingredient
// and tag links. Replace operations rewrite the whole child set inside one
// transaction, never a partial merge, so a crash can't leave the recipe with
// half of its links.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/recipe-share/internal/model"
)

// IngredientRef is one ingredient line of a create or replace payload.
// IngredientID attaches an existing canonical ingredient when non-zero;
// otherwise Name drives the upsert-by-name path. Unit only updates the
// stored unit when non-nil.
type IngredientRef struct {
	IngredientID uint64
	Name         string
	Unit         *string
}

// StepInput is one step line of a create or replace payload. Order zero
// means "use the 1-based position in the input slice".
type StepInput struct {
	Order       uint32
	Instruction string
}

// RecipePatch carries the optional scalar fields of a recipe update. Nil
// pointers leave the column untouched.
type RecipePatch struct {
	Title       *string
	Description *string
	Servings    *uint32
	PrepMinutes *uint32
	CookMinutes *uint32
}

// RecipeRepo encapsulates all database queries related to recipes and their
// owned steps, ingredient links and tag links.
type RecipeRepo struct {
	db *sql.DB
}

func NewRecipeRepo(db *sql.DB) *RecipeRepo { return &RecipeRepo{db: db} }

const recipeColumns = "id, owner_id, title, description, is_public, servings, prep_minutes, cook_minutes, avg_rating, created_at, updated_at"

func scanRecipe(row interface{ Scan(...any) error }, rec *model.Recipe) error {
	return row.Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.Description, &rec.IsPublic,
		&rec.Servings, &rec.PrepMinutes, &rec.CookMinutes, &rec.AvgRating,
		&rec.CreatedAt, &rec.UpdatedAt)
}

// ListPublic returns one page of public recipes, optionally filtered by a
// case-insensitive substring match on the title, together with the total
// match count. Paging arithmetic (clamping, hasNext) lives in the service.
func (r *RecipeRepo) ListPublic(ctx context.Context, query string, page, pageSize int) ([]model.Recipe, int, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var total int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM recipes WHERE is_public=1 AND LOWER(title) LIKE ?",
		pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recipeColumns+" FROM recipes WHERE is_public=1 AND LOWER(title) LIKE ? ORDER BY id LIMIT ? OFFSET ?",
		pattern, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Recipe, 0, pageSize)
	for rows.Next() {
		var rec model.Recipe
		if err := scanRecipe(rows, &rec); err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches the bare recipe row. ErrRecipeNotFound when absent.
func (r *RecipeRepo) GetByID(ctx context.Context, id uint64) (*model.Recipe, error) {
	var rec model.Recipe
	err := scanRecipe(r.db.QueryRowContext(ctx,
		"SELECT "+recipeColumns+" FROM recipes WHERE id=? LIMIT 1", id), &rec)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// GetDetail loads the full aggregate: the recipe, its steps ordered by step
// number ascending, its ingredient links joined with ingredient detail and
// its tags.
func (r *RecipeRepo) GetDetail(ctx context.Context, id uint64) (*model.RecipeDetail, error) {
	rec, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &model.RecipeDetail{
		Recipe:      *rec,
		Steps:       []model.Step{},
		Ingredients: []model.RecipeIngredient{},
		Tags:        []model.Tag{},
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, recipe_id, step_number, instruction FROM recipe_steps WHERE recipe_id=? ORDER BY step_number ASC", id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var s model.Step
		if err := rows.Scan(&s.ID, &s.RecipeID, &s.StepNumber, &s.Instruction); err != nil {
			rows.Close()
			return nil, err
		}
		detail.Steps = append(detail.Steps, s)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT i.id, i.name, COALESCE(i.unit, '')
		 FROM recipe_ingredients ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id = ? ORDER BY i.name`, id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var ing model.RecipeIngredient
		if err := rows.Scan(&ing.IngredientID, &ing.Name, &ing.Unit); err != nil {
			rows.Close()
			return nil, err
		}
		detail.Ingredients = append(detail.Ingredients, ing)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx,
		`SELECT t.id, t.name
		 FROM recipe_tags rt
		 JOIN tags t ON t.id = rt.tag_id
		 WHERE rt.recipe_id = ? ORDER BY t.name`, id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			rows.Close()
			return nil, err
		}
		detail.Tags = append(detail.Tags, t)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	return detail, nil
}

func closeRows(rows *sql.Rows) error {
	err := rows.Err()
	rows.Close()
	return err
}

// CreateAggregate inserts the recipe row together with its steps, resolved
// ingredient links and upserted tag links in a single transaction. On
// success rec.ID and the timestamp fields are populated.
func (r *RecipeRepo) CreateAggregate(ctx context.Context, rec *model.Recipe, steps []StepInput, ingredients []IngredientRef, tags []string) (err error) {
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

	res, err := tx.ExecContext(ctx,
		"INSERT INTO recipes (owner_id, title, description, is_public, servings, prep_minutes, cook_minutes) VALUES (?,?,?,?,?,?,?)",
		rec.OwnerID, rec.Title, rec.Description, rec.IsPublic, rec.Servings, rec.PrepMinutes, rec.CookMinutes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)

	if err = insertStepsTx(ctx, tx, rec.ID, steps); err != nil {
		return err
	}
	if err = linkIngredientsTx(ctx, tx, rec.ID, ingredients); err != nil {
		return err
	}
	if err = linkTagsTx(ctx, tx, rec.ID, tags); err != nil {
		return err
	}

	// Follow-up select so callers receive the DB-generated timestamps.
	return scanRecipe(tx.QueryRowContext(ctx,
		"SELECT "+recipeColumns+" FROM recipes WHERE id=? LIMIT 1", rec.ID), rec)
}

// UpdateScalars changes only the supplied scalar fields of a recipe.
func (r *RecipeRepo) UpdateScalars(ctx context.Context, id uint64, patch RecipePatch) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if patch.Title != nil {
		sets = append(sets, "title=?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *patch.Description)
	}
	if patch.Servings != nil {
		sets = append(sets, "servings=?")
		args = append(args, *patch.Servings)
	}
	if patch.PrepMinutes != nil {
		sets = append(sets, "prep_minutes=?")
		args = append(args, *patch.PrepMinutes)
	}
	if patch.CookMinutes != nil {
		sets = append(sets, "cook_minutes=?")
		args = append(args, *patch.CookMinutes)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=CURRENT_TIMESTAMP")
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		"UPDATE recipes SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return err
}

// SetVisibility updates only the public flag.
func (r *RecipeRepo) SetVisibility(ctx context.Context, id uint64, isPublic bool) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE recipes SET is_public=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", isPublic, id)
	return err
}

// Delete removes the recipe and every dependent record (steps, ingredient
// links, tag links, reviews, collection items) in one transaction.
func (r *RecipeRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	err = deleteRecipeTx(ctx, tx, id)
	return err
}

// ReplaceSteps deletes all existing steps of the recipe and inserts the full
// replacement set in one transaction.
func (r *RecipeRepo) ReplaceSteps(ctx context.Context, recipeID uint64, steps []StepInput) (err error) {
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
	if _, err = tx.ExecContext(ctx, "DELETE FROM recipe_steps WHERE recipe_id=?", recipeID); err != nil {
		return err
	}
	err = insertStepsTx(ctx, tx, recipeID, steps)
	return err
}

// ReplaceIngredients resolves every entry, then deletes all existing
// recipe-ingredient links and inserts the resolved set in one transaction.
func (r *RecipeRepo) ReplaceIngredients(ctx context.Context, recipeID uint64, refs []IngredientRef) (err error) {
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
	if _, err = tx.ExecContext(ctx, "DELETE FROM recipe_ingredients WHERE recipe_id=?", recipeID); err != nil {
		return err
	}
	err = linkIngredientsTx(ctx, tx, recipeID, refs)
	return err
}

// insertStepsTx writes the full step set. A zero Order falls back to the
// 1-based position of the entry in the payload.
func insertStepsTx(ctx context.Context, tx *sql.Tx, recipeID uint64, steps []StepInput) error {
	for i, s := range steps {
		order := s.Order
		if order == 0 {
			order = uint32(i + 1)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO recipe_steps (recipe_id, step_number, instruction) VALUES (?,?,?)",
			recipeID, order, s.Instruction); err != nil {
			return err
		}
	}
	return nil
}

// linkIngredientsTx resolves each reference through resolveIngredientTx and
// inserts one link per distinct ingredient. Duplicate lines in the payload
// collapse onto the same ingredient row and produce a single link.
func linkIngredientsTx(ctx context.Context, tx *sql.Tx, recipeID uint64, refs []IngredientRef) error {
	seen := make(map[uint64]bool, len(refs))
	for _, ref := range refs {
		ingID, err := resolveIngredientTx(ctx, tx, ref)
		if err != nil {
			return err
		}
		if seen[ingID] {
			continue
		}
		seen[ingID] = true
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES (?,?)",
			recipeID, ingID); err != nil {
			return err
		}
	}
	return nil
}

// resolveIngredientTx implements the single ingredient-resolution policy
// shared by recipe creation and ingredient replacement. An explicit ID must
// reference an existing row; otherwise the ingredient is upserted by exact
// name, updating the stored unit only when one was supplied.
func resolveIngredientTx(ctx context.Context, tx *sql.Tx, ref IngredientRef) (uint64, error) {
	if ref.IngredientID != 0 {
		var id uint64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM ingredients WHERE id=? LIMIT 1", ref.IngredientID).Scan(&id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, ErrIngredientNotFound
			}
			return 0, err
		}
		return id, nil
	}

	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return 0, ErrIngredientNameRequired
	}

	var id uint64
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM ingredients WHERE name=? LIMIT 1", name).Scan(&id)
	switch {
	case err == nil:
		if ref.Unit != nil {
			if _, err := tx.ExecContext(ctx,
				"UPDATE ingredients SET unit=? WHERE id=?", *ref.Unit, id); err != nil {
				return 0, err
			}
		}
		return id, nil
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			"INSERT INTO ingredients (name, unit) VALUES (?,?)", name, ref.Unit)
		if err != nil {
			return 0, err
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		return uint64(newID), nil
	default:
		return 0, err
	}
}

// linkTagsTx normalizes tag names (trimmed, lower-cased), upserts each by
// name and links the recipe to the resulting rows. Duplicates collapse.
func linkTagsTx(ctx context.Context, tx *sql.Tx, recipeID uint64, tags []string) error {
	seen := make(map[string]bool, len(tags))
	for _, raw := range tags {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tagID uint64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM tags WHERE name=? LIMIT 1", name).Scan(&tagID)
		if errors.Is(err, sql.ErrNoRows) {
			res, ierr := tx.ExecContext(ctx, "INSERT INTO tags (name) VALUES (?)", name)
			if ierr != nil {
				return ierr
			}
			id, ierr := res.LastInsertId()
			if ierr != nil {
				return ierr
			}
			tagID = uint64(id)
		} else if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?,?)", recipeID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceTags rewrites the recipe's tag links in one transaction. Used by
// the update flow when a tag list is supplied.
func (r *RecipeRepo) ReplaceTags(ctx context.Context, recipeID uint64, tags []string) (err error) {
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
	if _, err = tx.ExecContext(ctx, "DELETE FROM recipe_tags WHERE recipe_id=?", recipeID); err != nil {
		return err
	}
	err = linkTagsTx(ctx, tx, recipeID, tags)
	return err
}

// deleteRecipeTx removes one recipe and its dependent rows inside an open
// transaction. Shared with the user cascade delete.
func deleteRecipeTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	for _, q := range []string{
		"DELETE FROM recipe_steps WHERE recipe_id=?",
		"DELETE FROM recipe_ingredients WHERE recipe_id=?",
		"DELETE FROM recipe_tags WHERE recipe_id=?",
		"DELETE FROM reviews WHERE recipe_id=?",
		"DELETE FROM collection_items WHERE recipe_id=?",
		"DELETE FROM recipes WHERE id=?",
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	return nil
}
