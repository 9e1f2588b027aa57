package api

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"foodgram/internal/db"
	"foodgram/internal/models"
	"foodgram/internal/validation"
)

const recipeListLimit = 100

// RecipeHandler handles recipe CRUD via JSON API.
type RecipeHandler struct {
	db       *db.DB
	validate *validator.Validate
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(database *db.DB, validate *validator.Validate) *RecipeHandler {
	return &RecipeHandler{db: database, validate: validate}
}

// viewerID returns the authenticated user's ID, or nil for anonymous callers.
func viewerID(c fiber.Ctx) *uuid.UUID {
	user, _ := c.Locals("user").(*models.User)
	if user == nil {
		return nil
	}
	return &user.ID
}

// List returns the most recent recipes.
func (h *RecipeHandler) List(c fiber.Ctx) error {
	recipes, err := h.db.ListRecipes(c.Context(), viewerID(c), recipeListLimit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch recipes")
	}
	return jsonSuccess(c, recipes)
}

// Get returns a single recipe in its full read shape.
func (h *RecipeHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	recipe, err := h.db.GetRecipe(c.Context(), id, viewerID(c))
	if err != nil {
		if errors.Is(err, db.ErrRecipeNotFound) {
			return jsonError(c, fiber.StatusNotFound, "recipe not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch recipe")
	}

	return jsonSuccess(c, recipe)
}

// Create creates a recipe owned by the authenticated user.
func (h *RecipeHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input, err := h.parseInput(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	recipeID, err := h.db.CreateRecipe(c.Context(), user.ID, input)
	if err != nil {
		if errors.Is(err, db.ErrIngredientNotFound) {
			return jsonError(c, fiber.StatusBadRequest, "unknown ingredient id")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create recipe")
	}

	recipe, err := h.db.GetRecipe(c.Context(), recipeID, &user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch recipe")
	}

	return jsonCreated(c, recipe)
}

// Update replaces a recipe's fields and its ingredient list wholesale.
// Only the author may update.
func (h *RecipeHandler) Update(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	existing, err := h.db.GetRecipe(c.Context(), id, &user.ID)
	if err != nil {
		if errors.Is(err, db.ErrRecipeNotFound) {
			return jsonError(c, fiber.StatusNotFound, "recipe not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch recipe")
	}
	if existing.Author.ID != user.ID {
		return jsonError(c, fiber.StatusForbidden, "you cannot edit someone else's recipe")
	}

	input, err := h.parseInput(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.db.UpdateRecipe(c.Context(), id, input); err != nil {
		if errors.Is(err, db.ErrIngredientNotFound) {
			return jsonError(c, fiber.StatusBadRequest, "unknown ingredient id")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update recipe")
	}

	recipe, err := h.db.GetRecipe(c.Context(), id, &user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch recipe")
	}

	return jsonSuccess(c, recipe)
}

// Delete removes a recipe. Only the author may delete. Dependent rows
// (ingredient links, cart entries, favorites, short link) cascade.
func (h *RecipeHandler) Delete(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	existing, err := h.db.GetRecipe(c.Context(), id, &user.ID)
	if err != nil {
		if errors.Is(err, db.ErrRecipeNotFound) {
			return jsonError(c, fiber.StatusNotFound, "recipe not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch recipe")
	}
	if existing.Author.ID != user.ID {
		return jsonError(c, fiber.StatusForbidden, "you cannot delete someone else's recipe")
	}

	if err := h.db.DeleteRecipe(c.Context(), id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete recipe")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *RecipeHandler) parseInput(c fiber.Ctx) (*models.RecipeInput, error) {
	var input models.RecipeInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return nil, errors.New("invalid request body")
	}
	if err := validation.ValidateRecipeInput(h.validate, &input); err != nil {
		return nil, err
	}
	return &input, nil
}
