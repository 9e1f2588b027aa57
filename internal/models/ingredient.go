package models

import "github.com/google/uuid"

// Ingredient is a catalog entry. (name, measurement_unit) pairs are unique.
type Ingredient struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

// RecipeIngredient is an ingredient as embedded in a recipe read shape:
// the full catalog entry plus the amount used by the recipe.
type RecipeIngredient struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// AggregatedIngredient is one row of a user's shopping list: all cart
// recipes' amounts for the same (name, unit) pair summed. Derived at read
// time, never persisted.
type AggregatedIngredient struct {
	Name            string
	MeasurementUnit string
	TotalAmount     int
}
