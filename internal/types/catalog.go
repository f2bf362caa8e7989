package types

import "time"

// IngredientSummary is a read-only view of one catalog ingredient, enough to
// populate the wizard's ingredient picker and price a recipe.
type IngredientSummary struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	UnitCost float64 `json:"unit_cost"`
}

// CatalogSnapshot is a cached copy of the ingredient catalog.
type CatalogSnapshot struct {
	Ingredients []IngredientSummary `json:"ingredients"`
	FetchedAt   time.Time           `json:"fetched_at"`
}
