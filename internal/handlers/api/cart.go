package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"foodgram/internal/db"
	"foodgram/internal/models"
	"foodgram/internal/shopping"
)

// CartHandler handles shopping cart mutations and the list download.
type CartHandler struct {
	db       *db.DB
	shopping *shopping.Service
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(database *db.DB, shoppingService *shopping.Service) *CartHandler {
	return &CartHandler{db: database, shopping: shoppingService}
}

// Add puts a recipe into the caller's shopping cart.
func (h *CartHandler) Add(c fiber.Ctx) error {
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

	if err := h.db.AddToCart(c.Context(), user.ID, recipeID); err != nil {
		if errors.Is(err, db.ErrDuplicateCartEntry) {
			return jsonError(c, fiber.StatusBadRequest, "recipe already in shopping cart")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to add to cart")
	}

	return jsonCreated(c, recipe.Summary())
}

// Remove takes a recipe out of the caller's shopping cart.
func (h *CartHandler) Remove(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	if err := h.db.RemoveFromCart(c.Context(), user.ID, recipeID); err != nil {
		if errors.Is(err, db.ErrCartEntryNotFound) {
			return jsonError(c, fiber.StatusBadRequest, "recipe not in shopping cart")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to remove from cart")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Download returns the caller's aggregated shopping list as a file download.
// An empty cart still downloads a well-formed file.
func (h *CartHandler) Download(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	content, err := h.shopping.ShoppingList(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to build shopping list")
	}

	c.Set(fiber.HeaderContentType, shopping.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+shopping.AttachmentFilename+`"`)
	return c.Send(content)
}
