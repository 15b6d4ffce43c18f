package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/recipe-share/internal/model"
)

// UserRepo encapsulates all database queries against the users table. It
// stores and returns model.User records; password hashing is the caller's
// concern so the repository never sees plain credentials.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,username,email,password_hash,role,created_at,updated_at"

// Create inserts a user and returns its ID. Email is normalized to lower
// case, the username only trimmed. A duplicate username or email yields
// ErrUserExists.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash, role string) (uint64, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, email, passwordHash, role)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByIdentifier resolves a user by username or email. Login accepts either,
// so a single lookup covers both columns.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? OR email=? LIMIT 1",
		identifier, strings.ToLower(identifier)).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfile changes only the supplied fields. Nil pointers leave the
// column untouched. A unique violation yields ErrUserExists and a missing
// user ErrUserNotFound.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, username, email, passwordHash *string) error {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if username != nil {
		sets = append(sets, "username=?")
		args = append(args, strings.TrimSpace(*username))
	}
	if email != nil {
		sets = append(sets, "email=?")
		args = append(args, strings.ToLower(strings.TrimSpace(*email)))
	}
	if passwordHash != nil {
		sets = append(sets, "password_hash=?")
		args = append(args, *passwordHash)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=CURRENT_TIMESTAMP")
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrUserExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the user is gone or nothing changed; distinguish with a lookup.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// UpdateRole sets the role of the target user. ErrUserNotFound when absent.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", role, id)
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

// Delete removes a user together with every record hanging off the account:
// reviews (with the affected recipes' ratings recomputed), collections and
// their items, owned recipes with their children, and refresh tokens. The
// whole removal runs in one transaction.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
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
	if err = tx.QueryRowContext(ctx, "SELECT id FROM users WHERE id=?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrUserNotFound
		}
		return err
	}

	// Collect recipes whose average rating must be recomputed after the
	// user's reviews disappear.
	rated, err := collectIDs(tx.QueryContext(ctx,
		"SELECT DISTINCT recipe_id FROM reviews WHERE user_id=?", id))
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM reviews WHERE user_id=?", id); err != nil {
		return err
	}
	for _, rid := range rated {
		if _, err = tx.ExecContext(ctx, recomputeAvgSQL, rid, rid); err != nil {
			return err
		}
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE ci FROM collection_items ci
		 JOIN collections c ON c.id = ci.collection_id
		 WHERE c.owner_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM collections WHERE owner_id=?", id); err != nil {
		return err
	}

	// Owned recipes drag their steps, links, reviews and collection
	// references along.
	owned, err := collectIDs(tx.QueryContext(ctx, "SELECT id FROM recipes WHERE owner_id=?", id))
	if err != nil {
		return err
	}
	for _, rid := range owned {
		if err = deleteRecipeTx(ctx, tx, rid); err != nil {
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE user_id=?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	return err
}

// collectIDs drains a single-column uint64 result set.
func collectIDs(rows *sql.Rows, qerr error) ([]uint64, error) {
	if qerr != nil {
		return nil, qerr
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
