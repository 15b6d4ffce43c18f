package model

// Ingredient mirrors the `ingredients` table. Rows are shared across recipes
// through the recipe_ingredients link table; the upsert-by-name path keeps a
// single row per name. Unit is optional.
type Ingredient struct {
	ID   uint64 `json:"id"`             // ingredients.id
	Name string `json:"name"`           // ingredients.name
	Unit string `json:"unit,omitempty"` // ingredients.unit (nullable)
}

// Tag mirrors the `tags` table. Names are stored trimmed and lower-cased and
// are unique; tags are created on demand when a recipe references a new name.
type Tag struct {
	ID   uint64 `json:"id"`   // tags.id
	Name string `json:"name"` // tags.name (unique)
}
