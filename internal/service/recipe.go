package service

import (
	"context"
	"time"

	"github.com/iliyamo/recipe-share/internal/model"
	"github.com/iliyamo/recipe-share/internal/queue"
	"github.com/iliyamo/recipe-share/internal/repository"
)

// Paging bounds for the public listing.
const (
	maxPageSize     = 100
	defaultPageSize = 20
)

// RecipePage is one page of the public recipe listing.
type RecipePage struct {
	Items    []model.Recipe `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int            `json:"total"`
	HasNext  bool           `json:"hasNext"`
}

// RecipeService owns the multi-record consistency logic for recipes and
// their nested steps, ingredient links and tag links.
type RecipeService struct {
	Recipes *repository.RecipeRepo
}

func NewRecipeService(recipes *repository.RecipeRepo) *RecipeService {
	return &RecipeService{Recipes: recipes}
}

// List returns public recipes only, optionally filtered by a
// case-insensitive substring match on the title. Pages are 1-based and the
// page size is clamped to [1,100]; zero means the default of 20.
func (s *RecipeService) List(ctx context.Context, query string, page, pageSize int) (*RecipePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.Recipes.ListPublic(ctx, query, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &RecipePage{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		HasNext:  page*pageSize < total,
	}, nil
}

// Get loads the full aggregate. A private recipe requested by anyone but its
// owner or an admin fails with the same not-found error as true absence, so
// its existence stays hidden.
func (s *RecipeService) Get(ctx context.Context, id, requesterID uint64, role string) (*model.RecipeDetail, error) {
	detail, err := s.Recipes.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSeeRecipe(&detail.Recipe, requesterID, role) {
		return nil, repository.ErrRecipeNotFound
	}
	return detail, nil
}

// Create writes the recipe and all of its children atomically. Only CREATOR
// and ADMIN accounts may publish recipes.
func (s *RecipeService) Create(ctx context.Context, requesterID uint64, role string, rec *model.Recipe, steps []repository.StepInput, ingredients []repository.IngredientRef, tags []string) (*model.Recipe, error) {
	if err := canPublish(role); err != nil {
		return nil, err
	}
	rec.OwnerID = requesterID
	if err := s.Recipes.CreateAggregate(ctx, rec, steps, ingredients, tags); err != nil {
		return nil, err
	}
	_ = queue.PublishActivity(ctx, queue.ActivityEvent{
		Kind:        queue.KindRecipeCreated,
		RecipeID:    rec.ID,
		RecipeTitle: rec.Title,
		ActorID:     requesterID,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	return rec, nil
}

// Update changes only the supplied scalar fields; a supplied tag list
// replaces the tag links wholesale.
func (s *RecipeService) Update(ctx context.Context, id, requesterID uint64, role string, patch repository.RecipePatch, tags *[]string) (*model.Recipe, error) {
	rec, err := s.requireMutable(ctx, id, requesterID, role)
	if err != nil {
		return nil, err
	}
	if err := s.Recipes.UpdateScalars(ctx, rec.ID, patch); err != nil {
		return nil, err
	}
	if tags != nil {
		if err := s.Recipes.ReplaceTags(ctx, rec.ID, *tags); err != nil {
			return nil, err
		}
	}
	return s.Recipes.GetByID(ctx, rec.ID)
}

// Delete removes the recipe and all dependent records.
func (s *RecipeService) Delete(ctx context.Context, id, requesterID uint64, role string) error {
	rec, err := s.requireMutable(ctx, id, requesterID, role)
	if err != nil {
		return err
	}
	return s.Recipes.Delete(ctx, rec.ID)
}

// SetVisibility updates only the public flag.
func (s *RecipeService) SetVisibility(ctx context.Context, id, requesterID uint64, role string, isPublic bool) error {
	rec, err := s.requireMutable(ctx, id, requesterID, role)
	if err != nil {
		return err
	}
	return s.Recipes.SetVisibility(ctx, rec.ID, isPublic)
}

// ReplaceSteps rewrites the full step set, never a partial merge.
func (s *RecipeService) ReplaceSteps(ctx context.Context, id, requesterID uint64, role string, steps []repository.StepInput) error {
	rec, err := s.requireMutable(ctx, id, requesterID, role)
	if err != nil {
		return err
	}
	return s.Recipes.ReplaceSteps(ctx, rec.ID, steps)
}

// ReplaceIngredients resolves each entry through the shared ingredient
// resolution policy and rewrites the link set.
func (s *RecipeService) ReplaceIngredients(ctx context.Context, id, requesterID uint64, role string, refs []repository.IngredientRef) error {
	rec, err := s.requireMutable(ctx, id, requesterID, role)
	if err != nil {
		return err
	}
	return s.Recipes.ReplaceIngredients(ctx, rec.ID, refs)
}

// requireMutable loads the recipe and applies the owner-or-admin gate.
// Absence surfaces as ErrRecipeNotFound before authorization is considered,
// per the error taxonomy (404 beats 403 for missing resources).
func (s *RecipeService) requireMutable(ctx context.Context, id, requesterID uint64, role string) (*model.Recipe, error) {
	rec, err := s.Recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := canMutateOwned(rec.OwnerID, requesterID, role); err != nil {
		return nil, err
	}
	return rec, nil
}
