package client

import "costwise/internal/types"

type IngredientsResponse struct {
	Ingredients []types.IngredientSummary `json:"ingredients"`
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
}
