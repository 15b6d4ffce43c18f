// Package service holds the domain services sitting between the HTTP
// handlers and the repositories. Services own authorization and the
// cross-entity business rules; repositories own the SQL.
package service

import (
	"github.com/iliyamo/recipe-share/internal/model"
	"github.com/iliyamo/recipe-share/internal/repository"
)

// Authorization gates. Each gate answers one question and returns nil to
// allow or repository.ErrForbidden to deny, so callers can bubble the
// decision straight up to the handler layer. Role-set checks on whole route
// groups live in the middleware package; these gates cover the ownership
// predicates that need the loaded resource.

// canMutateOwned allows the resource owner and admins.
func canMutateOwned(ownerID, requesterID uint64, role string) error {
	if requesterID == ownerID || role == model.RoleAdmin {
		return nil
	}
	return repository.ErrForbidden
}

// canPublish allows accounts that may create recipes.
func canPublish(role string) error {
	if role == model.RoleCreator || role == model.RoleAdmin {
		return nil
	}
	return repository.ErrForbidden
}

// canSeeRecipe reports whether the requester may read the recipe at all.
// Private recipes are visible to their owner and admins only.
func canSeeRecipe(rec *model.Recipe, requesterID uint64, role string) bool {
	if rec.IsPublic {
		return true
	}
	return requesterID == rec.OwnerID || role == model.RoleAdmin
}
