package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/recipe-share/internal/model"
)

// CollectionRepo encapsulates all database queries related to collections
// and their items.
type CollectionRepo struct {
	db *sql.DB
}

func NewCollectionRepo(db *sql.DB) *CollectionRepo { return &CollectionRepo{db: db} }

const collectionColumns = "id, owner_id, name, created_at, updated_at"

func scanCollection(row interface{ Scan(...any) error }, c *model.Collection) error {
	return row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts a collection and returns the stored record.
func (r *CollectionRepo) Create(ctx context.Context, ownerID uint64, name string) (*model.Collection, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO collections (owner_id, name) VALUES (?,?)", ownerID, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var c model.Collection
	if err := scanCollection(r.db.QueryRowContext(ctx,
		"SELECT "+collectionColumns+" FROM collections WHERE id=? LIMIT 1", id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID fetches the bare collection row. ErrCollectionNotFound when absent.
func (r *CollectionRepo) GetByID(ctx context.Context, id uint64) (*model.Collection, error) {
	var c model.Collection
	err := scanCollection(r.db.QueryRowContext(ctx,
		"SELECT "+collectionColumns+" FROM collections WHERE id=? LIMIT 1", id), &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetDetail loads the collection together with its items in insertion order.
func (r *CollectionRepo) GetDetail(ctx context.Context, id uint64) (*model.CollectionDetail, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &model.CollectionDetail{Collection: *c, Items: []model.CollectionItem{}}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, collection_id, recipe_id, COALESCE(note,''), created_at FROM collection_items WHERE collection_id=? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.CollectionItem
		if err := rows.Scan(&it.ID, &it.CollectionID, &it.RecipeID, &it.Note, &it.CreatedAt); err != nil {
			return nil, err
		}
		detail.Items = append(detail.Items, it)
	}
	return detail, rows.Err()
}

// ListByOwner returns all collections of one user ordered by id.
func (r *CollectionRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Collection, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+collectionColumns+" FROM collections WHERE owner_id=? ORDER BY id", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Collection{}
	for rows.Next() {
		var c model.Collection
		if err := scanCollection(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateName renames a collection. ErrCollectionNotFound when absent.
func (r *CollectionRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE collections SET name=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		strings.TrimSpace(name), id)
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

// Delete removes the items first and then the collection, in one transaction;
// no implicit database cascade is assumed.
func (r *CollectionRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	if _, err = tx.ExecContext(ctx, "DELETE FROM collection_items WHERE collection_id=?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM collections WHERE id=?", id)
	return err
}

// AddItem appends a recipe to the collection. The duplicate check runs in
// the same transaction as the insert; a recipe may appear at most once per
// collection.
func (r *CollectionRepo) AddItem(ctx context.Context, collectionID, recipeID uint64, note string) (item *model.CollectionItem, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
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
		"SELECT id FROM collection_items WHERE collection_id=? AND recipe_id=? LIMIT 1",
		collectionID, recipeID).Scan(&existing)
	switch {
	case err == nil:
		err = ErrConflict
		return nil, err
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO collection_items (collection_id, recipe_id, note) VALUES (?,?,?)",
		collectionID, recipeID, note)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	item = &model.CollectionItem{ID: uint64(id), CollectionID: collectionID, RecipeID: recipeID, Note: note}
	return item, nil
}

// RemoveItem deletes one item, but only when it belongs to the addressed
// collection. ErrItemNotFound otherwise.
func (r *CollectionRepo) RemoveItem(ctx context.Context, collectionID, itemID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM collection_items WHERE id=? AND collection_id=?", itemID, collectionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}
