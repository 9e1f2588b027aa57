package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"foodgram/internal/db"
	"foodgram/internal/models"
)

// FavoriteHandler handles favoriting recipes.
type FavoriteHandler struct {
	db *db.DB
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(database *db.DB) *FavoriteHandler {
	return &FavoriteHandler{db: database}
}

// Add marks a recipe as a favorite of the caller.
func (h *FavoriteHandler) Add(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	recipe, err := h.db.GetRecipe(c.Context(), recipeID, &user.ID)
	if err != nil {
		if errors.Is(err, db.ErrRecipeNotFound) {
			return jsonError(c, fiber.StatusNotFound, "recipe not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch recipe")
	}

	if err := h.db.AddFavorite(c.Context(), user.ID, recipeID); err != nil {
		if errors.Is(err, db.ErrDuplicateFavorite) {
			return jsonError(c, fiber.StatusBadRequest, "recipe already in favorites")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to add favorite")
	}

	return jsonCreated(c, recipe.Summary())
}

// Remove deletes a recipe from the caller's favorites.
func (h *FavoriteHandler) Remove(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	if err := h.db.RemoveFavorite(c.Context(), user.ID, recipeID); err != nil {
		if errors.Is(err, db.ErrFavoriteNotFound) {
			return jsonError(c, fiber.StatusBadRequest, "recipe not in favorites")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to remove favorite")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
