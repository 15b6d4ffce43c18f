package model

import "time"

// Collection mirrors the `collections` table. Each collection belongs to a
// single user.
type Collection struct {
	ID        uint64    `json:"id"`         // collections.id
	OwnerID   uint64    `json:"owner_id"`   // collections.owner_id
	Name      string    `json:"name"`       // collections.name
	CreatedAt time.Time `json:"created_at"` // collections.created_at
	UpdatedAt time.Time `json:"updated_at"` // collections.updated_at
}

// CollectionItem mirrors the `collection_items` table. A given recipe appears
// at most once per collection; the repository checks for an existing row
// before inserting rather than relying on a database constraint.
type CollectionItem struct {
	ID           uint64    `json:"id"`             // collection_items.id
	CollectionID uint64    `json:"collection_id"`  // collection_items.collection_id
	RecipeID     uint64    `json:"recipe_id"`      // collection_items.recipe_id
	Note         string    `json:"note,omitempty"` // collection_items.note (nullable)
	CreatedAt    time.Time `json:"created_at"`     // collection_items.created_at
}

// CollectionDetail is a collection together with its items.
type CollectionDetail struct {
	Collection
	Items []CollectionItem `json:"items"`
}
