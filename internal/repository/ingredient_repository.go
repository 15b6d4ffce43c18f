package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/recipe-share/internal/model"
)

// IngredientRepo manages the shared ingredient catalogue. Names are not
// globally unique at the schema level; the upsert path in RecipeRepo is what
// keeps one row per name in practice.
type IngredientRepo struct {
	db *sql.DB
}

func NewIngredientRepo(db *sql.DB) *IngredientRepo { return &IngredientRepo{db: db} }

func scanIngredient(row interface{ Scan(...any) error }, ing *model.Ingredient) error {
	var unit sql.NullString
	if err := row.Scan(&ing.ID, &ing.Name, &unit); err != nil {
		return err
	}
	ing.Unit = unit.String
	return nil
}

// Create inserts a catalogue ingredient. Unit may be nil.
func (r *IngredientRepo) Create(ctx context.Context, name string, unit *string) (*model.Ingredient, error) {
	name = strings.TrimSpace(name)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO ingredients (name, unit) VALUES (?,?)", name, unit)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	ing := &model.Ingredient{ID: uint64(id), Name: name}
	if unit != nil {
		ing.Unit = *unit
	}
	return ing, nil
}

// GetByID fetches one ingredient. ErrIngredientNotFound when absent.
func (r *IngredientRepo) GetByID(ctx context.Context, id uint64) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := scanIngredient(r.db.QueryRowContext(ctx,
		"SELECT id, name, unit FROM ingredients WHERE id=? LIMIT 1", id), &ing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return &ing, nil
}

// List returns the catalogue, optionally filtered by a case-insensitive
// substring match on the name.
func (r *IngredientRepo) List(ctx context.Context, query string) ([]model.Ingredient, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, unit FROM ingredients WHERE LOWER(name) LIKE ? ORDER BY name", pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Ingredient{}
	for rows.Next() {
		var ing model.Ingredient
		if err := scanIngredient(rows, &ing); err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// Update changes only the supplied fields. ErrIngredientNotFound when the
// row is absent.
func (r *IngredientRepo) Update(ctx context.Context, id uint64, name, unit *string) error {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if name != nil {
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*name))
	}
	if unit != nil {
		sets = append(sets, "unit=?")
		args = append(args, *unit)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE ingredients SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an ingredient and any recipe links pointing at it, in one
// transaction to keep recipes referentially intact.
func (r *IngredientRepo) Delete(ctx context.Context, id uint64) (err error) {
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

	var exists uint64
	if err = tx.QueryRowContext(ctx, "SELECT id FROM ingredients WHERE id=?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrIngredientNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM recipe_ingredients WHERE ingredient_id=?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM ingredients WHERE id=?", id)
	return err
}
