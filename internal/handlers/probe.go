package handlers

import (
	"github.com/gofiber/fiber/v3"

	"foodgram/internal/db"
)

// ProbeHandler serves the liveness and readiness endpoints.
type ProbeHandler struct {
	db *db.DB
}

// NewProbeHandler creates a probe handler backed by the recipe database.
func NewProbeHandler(database *db.DB) *ProbeHandler {
	return &ProbeHandler{db: database}
}

// Liveness reports that the process is up. It deliberately checks nothing
// further; an unreachable database must not restart the pod.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness reports whether this instance can serve traffic. Every operation
// except the cached paths needs Postgres, so readiness is a pool ping.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
