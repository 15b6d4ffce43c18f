package service

import (
	"context"
	"time"

	"github.com/iliyamo/recipe-share/internal/model"
	"github.com/iliyamo/recipe-share/internal/queue"
	"github.com/iliyamo/recipe-share/internal/repository"
)

// ReviewService manages the review lifecycle. The derived average rating is
// maintained by the repository inside the review transaction; this layer
// adds the existence/visibility checks, the authorship gate and the
// activity events.
type ReviewService struct {
	Reviews *repository.ReviewRepo
	Recipes *repository.RecipeRepo
}

func NewReviewService(reviews *repository.ReviewRepo, recipes *repository.RecipeRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Recipes: recipes}
}

// ListByRecipe returns the reviews of a recipe the requester may see. The
// visibility rule matches recipe reads: a private recipe's reviews are
// hidden behind the same not-found error.
func (s *ReviewService) ListByRecipe(ctx context.Context, recipeID, requesterID uint64, role string) ([]model.Review, error) {
	rec, err := s.Recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !canSeeRecipe(rec, requesterID, role) {
		return nil, repository.ErrRecipeNotFound
	}
	return s.Reviews.ListByRecipe(ctx, recipeID)
}

// Create adds a review. The recipe must exist and be visible to the
// requester; a second review by the same user on the same recipe conflicts.
func (s *ReviewService) Create(ctx context.Context, recipeID, requesterID uint64, role string, rating uint8, comment string) (*model.Review, error) {
	rec, err := s.Recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !canSeeRecipe(rec, requesterID, role) {
		return nil, repository.ErrRecipeNotFound
	}
	id, err := s.Reviews.Create(ctx, recipeID, requesterID, rating, comment)
	if err != nil {
		return nil, err
	}
	if fresh, err := s.Recipes.GetByID(ctx, recipeID); err == nil {
		rec = fresh // pick up the recomputed average for the event
	}
	s.publish(ctx, queue.KindReviewCreated, rec, requesterID, rating)
	return s.Reviews.GetByID(ctx, id)
}

// Update changes the supplied fields of a review; only its author or an
// admin may do so. The recipe's average is recomputed by the repository.
func (s *ReviewService) Update(ctx context.Context, reviewID, requesterID uint64, role string, rating *uint8, comment *string) (*model.Review, error) {
	rv, err := s.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := canMutateOwned(rv.UserID, requesterID, role); err != nil {
		return nil, err
	}
	if err := s.Reviews.Update(ctx, reviewID, rating, comment); err != nil {
		return nil, err
	}
	if rec, err := s.Recipes.GetByID(ctx, rv.RecipeID); err == nil {
		var r uint8
		if rating != nil {
			r = *rating
		}
		s.publish(ctx, queue.KindReviewUpdated, rec, requesterID, r)
	}
	return s.Reviews.GetByID(ctx, reviewID)
}

// Delete removes a review under the same authorship gate.
func (s *ReviewService) Delete(ctx context.Context, reviewID, requesterID uint64, role string) error {
	rv, err := s.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := canMutateOwned(rv.UserID, requesterID, role); err != nil {
		return err
	}
	if err := s.Reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	if rec, err := s.Recipes.GetByID(ctx, rv.RecipeID); err == nil {
		s.publish(ctx, queue.KindReviewDeleted, rec, requesterID, 0)
	}
	return nil
}

// publish emits an activity event with the recipe's fresh average. Failures
// are already logged by the queue package and never interrupt the request.
func (s *ReviewService) publish(ctx context.Context, kind string, rec *model.Recipe, actorID uint64, rating uint8) {
	_ = queue.PublishActivity(ctx, queue.ActivityEvent{
		Kind:        kind,
		RecipeID:    rec.ID,
		RecipeTitle: rec.Title,
		ActorID:     actorID,
		Rating:      rating,
		AvgRating:   rec.AvgRating,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
}
