// Package repository contains data access logic separated from HTTP handlers.
// This file defines sentinel errors reused across repositories. Higher layers
// translate them into HTTP responses: ErrForbidden becomes 403, ErrConflict
// becomes 409 and the per-entity not-found values become 404.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as adding a recipe twice to the same collection or
// reviewing the same recipe twice.
var ErrConflict = errors.New("conflict")

// Per-entity not-found sentinels. A private recipe requested by a stranger is
// reported as ErrRecipeNotFound on purpose, so its existence stays hidden.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrItemNotFound       = errors.New("collection item not found")
	ErrReviewNotFound     = errors.New("review not found")
)

// ErrUserExists is returned when a signup or profile update collides with an
// existing username or email.
var ErrUserExists = errors.New("username or email already exists")

// ErrIngredientNameRequired is returned when an ingredient line carries
// neither an id nor a name. Handlers translate it into a 400.
var ErrIngredientNameRequired = errors.New("ingredient name required")

// isDuplicateKey reports whether err looks like a MySQL duplicate entry
// violation (error number 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
