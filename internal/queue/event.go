// Package queue defines message payloads exchanged over the message broker.
package queue

// ActivityQueueName is the durable queue carrying recipe activity events.
const ActivityQueueName = "recipe.activity"

// Event kinds published on the activity queue.
const (
	KindRecipeCreated = "recipe.created"
	KindReviewCreated = "review.created"
	KindReviewUpdated = "review.updated"
	KindReviewDeleted = "review.deleted"
)

// ActivityEvent is published when a recipe is created or a review mutates.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type ActivityEvent struct {
	Kind        string  `json:"kind"`
	RecipeID    uint64  `json:"recipe_id"`
	RecipeTitle string  `json:"recipe_title,omitempty"`
	ActorID     uint64  `json:"actor_id"`
	Rating      uint8   `json:"rating,omitempty"`
	AvgRating   float64 `json:"avg_rating,omitempty"`
	OccurredAt  string  `json:"occurred_at"`
}
