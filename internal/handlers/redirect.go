package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"foodgram/internal/config"
	"foodgram/internal/db"
	"foodgram/internal/metrics"
	"foodgram/internal/shortlink"
	"foodgram/internal/validation"
)

// RedirectHandler handles public short-link redirects.
type RedirectHandler struct {
	shortlinks *shortlink.Service
	cfg        *config.Config
}

// NewRedirectHandler creates a new redirect handler.
func NewRedirectHandler(service *shortlink.Service, cfg *config.Config) *RedirectHandler {
	return &RedirectHandler{shortlinks: service, cfg: cfg}
}

// Redirect resolves a URL hash and redirects to the canonical recipe URL.
// Unknown hashes render a 404 page; this route is hit by humans following
// shared links, not API clients.
func (h *RedirectHandler) Redirect(c fiber.Ctx) error {
	hash := c.Params("hash")
	if !validation.ValidateHash(hash) {
		return h.notFound(c, hash)
	}

	recipeID, err := h.shortlinks.Resolve(c.Context(), hash)
	if err != nil {
		if errors.Is(err, db.ErrShortLinkNotFound) {
			metrics.RecordShortLinkLookup(hash, metrics.OutcomeNotFound)
			return h.notFound(c, hash)
		}
		metrics.RecordShortLinkLookup(hash, metrics.OutcomeError)
		return err
	}

	metrics.RecordShortLinkLookup(hash, metrics.OutcomeHit)
	// 302, not 301: the destination must stay re-resolvable if the recipe
	// is ever deleted and its hash retired.
	return c.Redirect().Status(fiber.StatusFound).To(h.cfg.BaseURL + "/api/recipes/" + recipeID.String())
}

func (h *RedirectHandler) notFound(c fiber.Ctx, hash string) error {
	return c.Status(fiber.StatusNotFound).Render("error", fiber.Map{
		"Title":   "Not Found",
		"Message": "The link '" + hash + "' does not exist.",
	})
}
