package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"foodgram/internal/db"
)

// IngredientHandler exposes the read-only ingredient catalog.
type IngredientHandler struct {
	db *db.DB
}

// NewIngredientHandler creates a new ingredient handler.
func NewIngredientHandler(database *db.DB) *IngredientHandler {
	return &IngredientHandler{db: database}
}

// List returns catalog ingredients, optionally filtered by name prefix.
func (h *IngredientHandler) List(c fiber.Ctx) error {
	ingredients, err := h.db.ListIngredients(c.Context(), c.Query("name", ""))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch ingredients")
	}
	return jsonSuccess(c, ingredients)
}

// Get returns a single catalog ingredient by ID.
func (h *IngredientHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid ingredient id")
	}

	ingredient, err := h.db.GetIngredientByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrIngredientNotFound) {
			return jsonError(c, fiber.StatusNotFound, "ingredient not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch ingredient")
	}

	return jsonSuccess(c, ingredient)
}
