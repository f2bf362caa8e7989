package types

import "time"

type EntityKind string

const (
	KindRecipe   EntityKind = "recipe"
	KindMenuItem EntityKind = "menu-item"
)

// Entity is the committed server-side record returned by the API after a
// create or update call.
type Entity struct {
	ID        string     `json:"id"`
	Kind      EntityKind `json:"kind"`
	Name      string     `json:"name"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PayloadIngredient is one ingredient line in an outbound payload.
type PayloadIngredient struct {
	IngredientID int64   `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
}

// RecipePayload is the create/update request body for a recipe.
type RecipePayload struct {
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	Servings        int                 `json:"servings"`
	PrepTimeMinutes int                 `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes int                 `json:"cook_time_minutes,omitempty"`
	Instructions    string              `json:"instructions,omitempty"`
	Ingredients     []PayloadIngredient `json:"ingredients"`
}

// MenuItemPayload is the create/update request body for a menu item. It is a
// recipe payload plus the sales block.
type MenuItemPayload struct {
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	Servings        int                 `json:"servings"`
	PrepTimeMinutes int                 `json:"prep_time_minutes,omitempty"`
	CookTimeMinutes int                 `json:"cook_time_minutes,omitempty"`
	Instructions    string              `json:"instructions,omitempty"`
	Ingredients     []PayloadIngredient `json:"ingredients"`
	Category        string              `json:"category"`
	Price           float64             `json:"price"`
	Margin          float64             `json:"margin"`
	IsAvailable     bool                `json:"is_available"`
}
