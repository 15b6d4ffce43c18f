package service

import (
	"context"

	"github.com/iliyamo/recipe-share/internal/model"
	"github.com/iliyamo/recipe-share/internal/repository"
)

// CollectionService manages collections and their items. The owner-or-admin
// gate runs before every mutating operation; reads by strangers fail with
// the not-found error so foreign collections stay hidden.
type CollectionService struct {
	Collections *repository.CollectionRepo
	Recipes     *repository.RecipeRepo
}

func NewCollectionService(collections *repository.CollectionRepo, recipes *repository.RecipeRepo) *CollectionService {
	return &CollectionService{Collections: collections, Recipes: recipes}
}

// List returns the requester's collections. Admins may pass an explicit
// owner id to view any user's collections; for everyone else the filter is
// ignored.
func (s *CollectionService) List(ctx context.Context, requesterID uint64, role string, ownerFilter uint64) ([]model.Collection, error) {
	owner := requesterID
	if role == model.RoleAdmin && ownerFilter != 0 {
		owner = ownerFilter
	}
	return s.Collections.ListByOwner(ctx, owner)
}

// Get loads a collection with its items.
func (s *CollectionService) Get(ctx context.Context, id, requesterID uint64, role string) (*model.CollectionDetail, error) {
	detail, err := s.Collections.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if requesterID != detail.OwnerID && role != model.RoleAdmin {
		return nil, repository.ErrCollectionNotFound
	}
	return detail, nil
}

// Create adds an empty collection owned by the requester.
func (s *CollectionService) Create(ctx context.Context, requesterID uint64, name string) (*model.Collection, error) {
	return s.Collections.Create(ctx, requesterID, name)
}

// Update renames a collection.
func (s *CollectionService) Update(ctx context.Context, id, requesterID uint64, role string, name string) (*model.Collection, error) {
	if _, err := s.requireMutable(ctx, id, requesterID, role); err != nil {
		return nil, err
	}
	if err := s.Collections.UpdateName(ctx, id, name); err != nil {
		return nil, err
	}
	return s.Collections.GetByID(ctx, id)
}

// Delete removes the collection and its items.
func (s *CollectionService) Delete(ctx context.Context, id, requesterID uint64, role string) error {
	if _, err := s.requireMutable(ctx, id, requesterID, role); err != nil {
		return err
	}
	return s.Collections.Delete(ctx, id)
}

// AddItem appends a recipe to the collection. The recipe must exist and be
// visible to the requester; a recipe already present conflicts.
func (s *CollectionService) AddItem(ctx context.Context, collectionID, requesterID uint64, role string, recipeID uint64, note string) (*model.CollectionItem, error) {
	if _, err := s.requireMutable(ctx, collectionID, requesterID, role); err != nil {
		return nil, err
	}
	rec, err := s.Recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !canSeeRecipe(rec, requesterID, role) {
		return nil, repository.ErrRecipeNotFound
	}
	return s.Collections.AddItem(ctx, collectionID, recipeID, note)
}

// RemoveItem deletes one item from the collection. Items belonging to a
// different collection are reported as absent.
func (s *CollectionService) RemoveItem(ctx context.Context, collectionID, itemID, requesterID uint64, role string) error {
	if _, err := s.requireMutable(ctx, collectionID, requesterID, role); err != nil {
		return err
	}
	return s.Collections.RemoveItem(ctx, collectionID, itemID)
}

func (s *CollectionService) requireMutable(ctx context.Context, id, requesterID uint64, role string) (*model.Collection, error) {
	col, err := s.Collections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canMutateOwned(col.OwnerID, requesterID, role); err != nil {
		return nil, err
	}
	return col, nil
}
