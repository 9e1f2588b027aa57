package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is the full read shape of a recipe: nested ingredient objects and
// per-viewer flags. The write shape is RecipeInput; the two are deliberately
// separate types.
type Recipe struct {
	ID                uuid.UUID          `json:"id"`
	Author            Profile            `json:"author"`
	Name              string             `json:"name"`
	Text              string             `json:"text"`
	ImageURL          string             `json:"image"`
	Ingredients       []RecipeIngredient `json:"ingredients"`
	CookingTime       int                `json:"cooking_time"`
	IsFavorited       bool               `json:"is_favorited"`
	IsInShoppingCart  bool               `json:"is_in_shopping_cart"`
	CreatedAt         time.Time          `json:"created_at"`
}

// RecipeSummary is the short recipe shape used in subscriptions, favorites
// and cart responses.
type RecipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// Summary returns the short shape of a recipe.
func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		ImageURL:    r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

// RecipeInput is the write shape of a recipe: ingredients arrive as
// id+amount pairs, not nested objects.
type RecipeInput struct {
	Name        string                  `json:"name" validate:"required,max=128"`
	Text        string                  `json:"text"`
	ImageURL    string                  `json:"image"`
	CookingTime int                     `json:"cooking_time" validate:"required,min=1"`
	Ingredients []RecipeIngredientInput `json:"ingredients" validate:"required,min=1,dive"`
}

// RecipeIngredientInput is one id+amount pair in a recipe write payload.
type RecipeIngredientInput struct {
	ID     uuid.UUID `json:"id" validate:"required"`
	Amount int       `json:"amount" validate:"required,min=1"`
}
