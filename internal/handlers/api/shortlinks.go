package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"foodgram/internal/config"
	"foodgram/internal/db"
	"foodgram/internal/models"
	"foodgram/internal/shortlink"
)

// ShortLinkHandler hands out short links for recipes.
type ShortLinkHandler struct {
	shortlinks *shortlink.Service
	cfg        *config.Config
}

// NewShortLinkHandler creates a new short-link handler.
func NewShortLinkHandler(service *shortlink.Service, cfg *config.Config) *ShortLinkHandler {
	return &ShortLinkHandler{shortlinks: service, cfg: cfg}
}

// GetLink returns the recipe's short link, creating it on first request.
// The response shape is fixed: {"short-link": "<base_url>/a/r/<hash>"}.
func (h *ShortLinkHandler) GetLink(c fiber.Ctx) error {
	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	link, err := h.shortlinks.GetOrCreate(c.Context(), recipeID)
	if err != nil {
		if errors.Is(err, db.ErrRecipeNotFound) {
			return jsonError(c, fiber.StatusNotFound, "recipe not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create short link")
	}

	return c.JSON(models.ShortLinkResponse{
		ShortLink: h.cfg.BaseURL + "/a/r/" + link.URLHash,
	})
}
