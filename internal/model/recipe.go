package model

import "time"

// Recipe mirrors the `recipes` table. AvgRating is denormalized: it is
// rewritten by the review repository inside the same transaction as every
// review mutation, so it always matches the current review set.
type Recipe struct {
	ID          uint64    `json:"id"`           // recipes.id
	OwnerID     uint64    `json:"owner_id"`     // recipes.owner_id
	Title       string    `json:"title"`        // recipes.title
	Description string    `json:"description"`  // recipes.description
	IsPublic    bool      `json:"is_public"`    // recipes.is_public
	Servings    uint32    `json:"servings"`     // recipes.servings
	PrepMinutes uint32    `json:"prep_minutes"` // recipes.prep_minutes
	CookMinutes uint32    `json:"cook_minutes"` // recipes.cook_minutes
	AvgRating   float64   `json:"avg_rating"`   // recipes.avg_rating (derived)
	CreatedAt   time.Time `json:"created_at"`   // recipes.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // recipes.updated_at
}

// Step belongs to exactly one recipe. StepNumber is the 1-based ordering key,
// unique per recipe; the whole set is rewritten on every steps update.
type Step struct {
	ID          uint64 `json:"id"`          // recipe_steps.id
	RecipeID    uint64 `json:"recipe_id"`   // recipe_steps.recipe_id
	StepNumber  uint32 `json:"step_number"` // recipe_steps.step_number
	Instruction string `json:"instruction"` // recipe_steps.instruction
}

// RecipeIngredient is one row of the recipe_ingredients link joined with the
// referenced ingredient's detail.
type RecipeIngredient struct {
	IngredientID uint64 `json:"ingredient_id"`
	Name         string `json:"name"`
	Unit         string `json:"unit,omitempty"`
}

// RecipeDetail is a recipe together with its owned steps and its joined
// ingredient and tag associations, loaded as one aggregate.
type RecipeDetail struct {
	Recipe
	Steps       []Step             `json:"steps"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Tags        []Tag              `json:"tags"`
}
