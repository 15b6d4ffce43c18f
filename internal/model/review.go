package model

import "time"

// Review mirrors the `reviews` table. A user holds at most one review per
// recipe; the rating is an integer between 1 and 5.
type Review struct {
	ID        uint64    `json:"id"`                // reviews.id
	RecipeID  uint64    `json:"recipe_id"`         // reviews.recipe_id
	UserID    uint64    `json:"user_id"`           // reviews.user_id
	Rating    uint8     `json:"rating"`            // reviews.rating (1..5)
	Comment   string    `json:"comment,omitempty"` // reviews.comment (nullable)
	CreatedAt time.Time `json:"created_at"`        // reviews.created_at
	UpdatedAt time.Time `json:"updated_at"`        // reviews.updated_at
}
