package service

import (
	"context"

	"github.com/iliyamo/recipe-share/internal/model"
	"github.com/iliyamo/recipe-share/internal/repository"
)

// IngredientService manages the shared ingredient catalog. Reads are public;
// mutations are restricted to creators and admins at the routing layer.
type IngredientService struct {
	Ingredients *repository.IngredientRepo
}

func NewIngredientService(ingredients *repository.IngredientRepo) *IngredientService {
	return &IngredientService{Ingredients: ingredients}
}

// List returns catalog entries, optionally filtered by a name substring.
func (s *IngredientService) List(ctx context.Context, query string) ([]model.Ingredient, error) {
	return s.Ingredients.List(ctx, query)
}

// Get returns a single catalog entry.
func (s *IngredientService) Get(ctx context.Context, id uint64) (*model.Ingredient, error) {
	return s.Ingredients.GetByID(ctx, id)
}

// Create adds a catalog entry. Names carry no unique constraint at the
// schema level; the recipe link path reuses existing rows by name, so the
// catalog converges on one row per name in practice.
func (s *IngredientService) Create(ctx context.Context, name string, unit *string) (*model.Ingredient, error) {
	return s.Ingredients.Create(ctx, name, unit)
}

// Update changes name and/or unit of an entry.
func (s *IngredientService) Update(ctx context.Context, id uint64, name, unit *string) (*model.Ingredient, error) {
	if err := s.Ingredients.Update(ctx, id, name, unit); err != nil {
		return nil, err
	}
	return s.Ingredients.GetByID(ctx, id)
}

// Delete removes an entry together with its recipe links.
func (s *IngredientService) Delete(ctx context.Context, id uint64) error {
	return s.Ingredients.Delete(ctx, id)
}
